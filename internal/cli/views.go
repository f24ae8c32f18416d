package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tbourn/krishi-mitra/internal/domain"
	"github.com/tbourn/krishi-mitra/internal/i18n"
	"github.com/tbourn/krishi-mitra/internal/market"
	"github.com/tbourn/krishi-mitra/internal/stores"
)

const previewRunes = 60

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= previewRunes {
		return s
	}
	r := []rune(s)
	return string(r[:previewRunes-1]) + "…"
}

// ShowProfile prints the signed-in farmer, or a hint to sign in.
func (a *App) ShowProfile() {
	u, ok := a.Identity.Current()
	if !ok {
		a.printf("Not signed in. Use `krishi login` or `krishi signup`.\n")
		return
	}
	a.printf("%s  %s\n", u.Name, u.Phone)
	a.printf("Location: %s\n", u.Location)
	if len(u.Crops) > 0 {
		a.printf("Crops:    %s\n", strings.Join(u.Crops, ", "))
	}
	if u.History != "" {
		a.printf("History:  %s\n", u.History)
	}
}

// ShowHistory lists archived conversations of the active language.
func (a *App) ShowHistory(ctx context.Context) error {
	lang := a.Lang.Get()
	entries, err := a.History.List(ctx, lang)
	if err != nil {
		return err
	}
	a.printf("%s\n", i18n.T(lang, i18n.ChatHistory))
	if len(entries) == 0 {
		a.printf("%s\n", i18n.T(lang, i18n.EmptyHistory))
		return nil
	}
	for _, e := range entries {
		a.printf("%s  %s  %s: %s\n", e.ID[:min(8, len(e.ID))], stamp(e.CreatedAt), e.Speaker, preview(e.Preview))
	}
	return nil
}

// ShowConversation prints one archived conversation. id may be a prefix.
func (a *App) ShowConversation(ctx context.Context, id string) error {
	lang := a.Lang.Get()
	entries, err := a.History.List(ctx, lang)
	if err != nil {
		return err
	}
	full := ""
	for _, e := range entries {
		if strings.HasPrefix(e.ID, id) {
			if full != "" {
				return fmt.Errorf("conversation id %q is ambiguous", id)
			}
			full = e.ID
		}
	}
	snap, ok, err := a.History.Conversation(ctx, lang, full)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("conversation %q not found", id)
	}
	for _, m := range snap.Messages {
		label := i18n.T(lang, i18n.SpeakerAI)
		if m.Role == domain.RoleUser {
			label = i18n.T(lang, i18n.SpeakerUser)
		}
		a.printf("%s · %s\n%s\n\n", label, stamp(m.CreatedAt), a.Renderer.Terminal(m.Content, a.Color))
	}
	return nil
}

// ShowPrices prints the reference price table filtered by q.
func (a *App) ShowPrices(q string) {
	rows := market.SearchReference(q)
	if len(rows) == 0 {
		a.printf("No crops match %q.\n", q)
		return
	}
	a.printf("%-16s %-10s %12s\n", "Crop", "Variety", "INR/quintal")
	for _, p := range rows {
		a.printf("%-16s %-10s %12s\n", p.Crop, p.Variety, p.Price.StringFixed(0))
	}
}

// ShowListings prints the ledger, newest first.
func (a *App) ShowListings() {
	ls := a.Ledger.Listings()
	if len(ls) == 0 {
		a.printf("No listings yet. Post one with /sell <crop> <quantity> <price>.\n")
		return
	}
	for _, l := range ls {
		flag := ""
		if l.AboveMarket() {
			flag = "  (above market)"
		}
		a.printf("%s  %-16s %s qtl @ ₹%s = ₹%s%s\n",
			l.ID[:min(8, len(l.ID))], l.Crop, l.Quantity.String(), l.PricePerUnit.String(), l.Total().StringFixed(2), flag)
	}
}

// Sell posts a listing from raw fields. Validation problems are returned as
// *market.ValidationError.
func (a *App) Sell(crop, qty, price string) (market.Listing, error) {
	in, err := market.ParseListingInput(crop, qty, price)
	if err != nil {
		return market.Listing{}, err
	}
	id, err := a.Ledger.Post(in)
	if err != nil {
		return market.Listing{}, err
	}
	l, _ := a.Ledger.Get(id)
	return l, nil
}

// RemoveListing deletes the listing whose id starts with prefix.
func (a *App) RemoveListing(prefix string) bool {
	for _, l := range a.Ledger.Listings() {
		if prefix != "" && strings.HasPrefix(l.ID, prefix) {
			a.Ledger.Remove(l.ID)
			return true
		}
	}
	return false
}

// SetLanguage persists lang ("en", "ml", locale tags) or toggles when arg is
// "toggle" or empty.
func (a *App) SetLanguage(ctx context.Context, arg string) (i18n.Language, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" || arg == "toggle" {
		return a.Lang.Toggle(ctx)
	}
	var lang i18n.Language
	switch lower := strings.ToLower(arg); lower {
	case "english":
		lang = i18n.English
	case "malayalam", "മലയാളം":
		lang = i18n.Malayalam
	default:
		lang = i18n.Parse(arg)
		if lower != "primary" && lower != "secondary" && !strings.HasPrefix(lower, lang.String()) {
			return a.Lang.Get(), fmt.Errorf("%w: %q", stores.ErrUnsupportedLanguage, arg)
		}
	}
	return lang, a.Lang.Set(ctx, lang)
}

func describeErr(err error) string {
	var ve *market.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return err.Error()
}
