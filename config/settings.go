package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/etnz/smartbiz/store"
	"github.com/rs/zerolog/log"
)

// Paper sizes of receipt printers.
const (
	PaperK80 = "K80"
	PaperK58 = "K58"
)

// Printer configures receipt printing.
type Printer struct {
	PaperSize string `json:"paperSize" validate:"oneof=K80 K58"`
	AutoPrint bool   `json:"autoPrint"`
	ShowLogo  bool   `json:"showLogo"`
	Copies    int    `json:"copies" validate:"min=1,max=10"`
}

// Barcode configures product label printing. Sizes are in millimetres,
// the font size in points.
type Barcode struct {
	Width        int  `json:"width" validate:"min=10,max=100"`
	Height       int  `json:"height" validate:"min=10,max=100"`
	FontSize     int  `json:"fontSize" validate:"min=4,max=24"`
	ShowName     bool `json:"showName"`
	ShowPrice    bool `json:"showPrice"`
	LabelsPerRow int  `json:"labelsPerRow" validate:"min=1,max=4"`
}

// Telegram configures order notifications.
type Telegram struct {
	BotToken string `json:"botToken"`
	ChatID   string `json:"chatId"`
	Enabled  bool   `json:"enabled"`
}

// Ready reports whether notifications can be sent.
func (t Telegram) Ready() bool { return t.BotToken != "" && t.ChatID != "" }

// Bank is the account shown as a VietQR code on receipts.
type Bank struct {
	BankID      string `json:"bankId" validate:"required,alphanum"`
	AccountNo   string `json:"accountNo" validate:"required,numeric"`
	AccountName string `json:"accountName" validate:"required"`
}

// Invoice is the shop identity printed on receipts.
type Invoice struct {
	StoreName     string `json:"storeName" validate:"required"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	FooterMessage string `json:"footerMessage"`
}

// Settings gathers every persisted setting but the admin password.
type Settings struct {
	Printer   Printer
	Barcode   Barcode
	Telegram  Telegram
	Bank      Bank
	Invoice   Invoice
	ScriptURL string `validate:"omitempty,url"`
}

// Defaults returns the settings of a new shop.
func Defaults() Settings {
	return Settings{
		Printer:  Printer{PaperSize: PaperK80, AutoPrint: false, ShowLogo: true, Copies: 1},
		Barcode:  Barcode{Width: 35, Height: 22, FontSize: 8, ShowName: true, ShowPrice: true, LabelsPerRow: 2},
		Telegram: Telegram{},
		Bank:     Bank{BankID: "mbbank", AccountNo: "123456789", AccountName: "TRUNG QUAN"},
		Invoice: Invoice{
			StoreName:     "SMARTBIZ POS",
			Address:       "Số 123 Đường ABC, HCM",
			Phone:         "0987.654.321",
			FooterMessage: "Cảm ơn Quý khách!",
		},
	}
}

// Validate checks every record of s.
func (s Settings) Validate() error {
	return validate.Struct(s)
}

// Load reads the settings from st. A record that was never saved takes its
// default value; so does a record that cannot be decoded or fails
// validation, with a warning. Only store failures are returned.
func Load(ctx context.Context, st store.Store) (Settings, error) {
	s := Defaults()
	errs := errors.Join(
		loadRecord(ctx, st, store.KeyPrinter, &s.Printer),
		loadRecord(ctx, st, store.KeyBarcode, &s.Barcode),
		loadRecord(ctx, st, store.KeyTelegram, &s.Telegram),
		loadRecord(ctx, st, store.KeyBank, &s.Bank),
		loadRecord(ctx, st, store.KeyInvoice, &s.Invoice),
	)
	url, err := getString(ctx, st, store.KeyScriptURL)
	if err != nil {
		errs = errors.Join(errs, err)
	}
	if validate.Var(url, "omitempty,url") != nil {
		log.Warn().Str("key", store.KeyScriptURL).Str("value", url).Msg("invalid sync URL, ignored")
		url = ""
	}
	s.ScriptURL = url
	return s, errs
}

// loadRecord decodes the record under key into v, keeping v when the record
// is absent or invalid.
func loadRecord[T any](ctx context.Context, st store.Store, key string, v *T) error {
	data, err := st.Get(ctx, key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot read %q: %w", key, err)
	}
	// decode on top of the default so that missing fields keep theirs
	rec := *v
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cannot decode settings, using defaults")
		return nil
	}
	if err := validate.Struct(rec); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("invalid settings, using defaults")
		return nil
	}
	*v = rec
	return nil
}

// Save validates s and writes every record to st.
func Save(ctx context.Context, st store.Store, s Settings) error {
	s.ScriptURL = strings.TrimSpace(s.ScriptURL)
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return errors.Join(
		saveRecord(ctx, st, store.KeyPrinter, s.Printer),
		saveRecord(ctx, st, store.KeyBarcode, s.Barcode),
		saveRecord(ctx, st, store.KeyTelegram, s.Telegram),
		saveRecord(ctx, st, store.KeyBank, s.Bank),
		saveRecord(ctx, st, store.KeyInvoice, s.Invoice),
		putString(ctx, st, store.KeyScriptURL, s.ScriptURL),
	)
}

func saveRecord(ctx context.Context, st store.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cannot encode %q: %w", key, err)
	}
	if err := st.Put(ctx, key, data); err != nil {
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	return nil
}

// getString reads a plain string value. Both a JSON string and raw text are
// accepted; an absent key reads as "".
func getString(ctx context.Context, st store.Store, key string) (string, error) {
	data, err := st.Get(ctx, key)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("cannot read %q: %w", key, err)
	}
	var s string
	if json.Unmarshal(data, &s) == nil {
		return s, nil
	}
	return strings.TrimSpace(string(data)), nil
}

func putString(ctx context.Context, st store.Store, key, value string) error {
	data, _ := json.Marshal(value)
	if err := st.Put(ctx, key, data); err != nil {
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	return nil
}
