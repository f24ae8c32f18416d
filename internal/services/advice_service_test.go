package services

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/tbourn/krishi-mitra/internal/advisory"
	"github.com/tbourn/krishi-mitra/internal/i18n"
	"github.com/tbourn/krishi-mitra/internal/render"
)

type stubAdvisor struct {
	got   advisory.AdviceRequest
	calls int
	reply string
	err   error
}

func (a *stubAdvisor) RequestAdvice(_ context.Context, req advisory.AdviceRequest) (string, error) {
	a.calls++
	a.got = req
	return a.reply, a.err
}

func TestAdvise_TextOnly_RendersHTML(t *testing.T) {
	adv := &stubAdvisor{reply: "**Spray** neem oil"}
	svc := NewAdviceService(adv, render.New())

	out, err := svc.Advise(context.Background(), AdviceInput{Prompt: "leaf spots", Language: "ml-IN"})
	if err != nil {
		t.Fatalf("Advise: %v", err)
	}
	if out.Text != "**Spray** neem oil" {
		t.Fatalf("text should be raw markdown, got %q", out.Text)
	}
	if !strings.Contains(out.HTML, "<strong>Spray</strong>") {
		t.Fatalf("html = %q", out.HTML)
	}
	if out.Language != i18n.Malayalam || adv.got.Language != i18n.Malayalam {
		t.Fatalf("language not parsed: out=%s req=%s", out.Language, adv.got.Language)
	}
	if adv.got.Image != nil {
		t.Fatalf("no image expected")
	}
}

func TestAdvise_ImageDecodedWithMIMEFromPrefix(t *testing.T) {
	adv := &stubAdvisor{reply: "ok"}
	svc := NewAdviceService(adv, nil)

	data := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte{1, 2, 3})
	out, err := svc.Advise(context.Background(), AdviceInput{ImageData: data, Language: "secondary"})
	if err != nil {
		t.Fatalf("Advise: %v", err)
	}
	if out.HTML != "" {
		t.Fatalf("nil renderer should leave HTML empty")
	}
	if adv.got.Image == nil || adv.got.Image.MIMEType != "image/jpeg" || len(adv.got.Image.Data) != 3 {
		t.Fatalf("image = %+v", adv.got.Image)
	}
	if adv.got.Prompt != "" {
		t.Fatalf("prompt should stay empty, got %q", adv.got.Prompt)
	}
}

func TestAdvise_Validation(t *testing.T) {
	adv := &stubAdvisor{reply: "x"}
	svc := NewAdviceService(adv, nil)
	svc.MaxPromptRunes = 5

	cases := []struct {
		name string
		in   AdviceInput
		want error
	}{
		{"empty", AdviceInput{Prompt: "   "}, advisory.ErrInvalidRequest},
		{"bad image", AdviceInput{ImageData: "%%%"}, advisory.ErrInvalidImage},
		{"too long", AdviceInput{Prompt: "പച്ചക്കറി"}, ErrTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Advise(context.Background(), tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v; want %v", err, tc.want)
			}
		})
	}
	if adv.calls != 0 {
		t.Fatalf("advisor must not be called for invalid input, calls=%d", adv.calls)
	}
}

func TestAdvise_AdvisorErrorPropagates(t *testing.T) {
	ge := &advisory.GatewayError{Message: "quota", Status: 429}
	svc := NewAdviceService(&stubAdvisor{err: ge}, nil)

	_, err := svc.Advise(context.Background(), AdviceInput{Prompt: "hi"})
	var got *advisory.GatewayError
	if !errors.As(err, &got) || got.Status != 429 {
		t.Fatalf("want gateway error, got %v", err)
	}
}

func TestAdvise_NoAdvisor(t *testing.T) {
	svc := &AdviceService{}
	_, err := svc.Advise(context.Background(), AdviceInput{Prompt: "hi"})
	if !errors.Is(err, advisory.ErrModelUnavailable) {
		t.Fatalf("want ErrModelUnavailable, got %v", err)
	}
}
