package renderer

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/smartbiz/config"
	md "github.com/nao1215/markdown"
)

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// mask hides all but the last four characters of a secret.
func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("•", len(s))
	}
	return strings.Repeat("•", len(s)-4) + s[len(s)-4:]
}

// SettingsMarkdown renders the settings. lastSync is zero when the workspace
// was never synced.
func SettingsMarkdown(s config.Settings, lastSync time.Time) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Settings")
	section := func(title string, rows [][]string) {
		doc.H2(title)
		doc.Table(md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft},
			Header:    []string{"Setting", "Value"},
			Rows:      rows,
		})
	}

	section("Invoice", [][]string{
		{"Store name", cell(s.Invoice.StoreName)},
		{"Address", cell(s.Invoice.Address)},
		{"Phone", s.Invoice.Phone},
		{"Footer", cell(s.Invoice.FooterMessage)},
	})
	section("Bank", [][]string{
		{"Bank", s.Bank.BankID},
		{"Account", s.Bank.AccountNo},
		{"Holder", cell(s.Bank.AccountName)},
	})
	section("Printer", [][]string{
		{"Paper", s.Printer.PaperSize},
		{"Auto print", yesNo(s.Printer.AutoPrint)},
		{"Logo", yesNo(s.Printer.ShowLogo)},
		{"Copies", fmt.Sprint(s.Printer.Copies)},
	})
	section("Barcode Labels", [][]string{
		{"Size", fmt.Sprintf("%dx%d mm", s.Barcode.Width, s.Barcode.Height)},
		{"Font size", fmt.Sprintf("%d pt", s.Barcode.FontSize)},
		{"Name", yesNo(s.Barcode.ShowName)},
		{"Price", yesNo(s.Barcode.ShowPrice)},
		{"Labels per row", fmt.Sprint(s.Barcode.LabelsPerRow)},
	})
	section("Telegram", [][]string{
		{"Enabled", yesNo(s.Telegram.Enabled)},
		{"Bot token", mask(s.Telegram.BotToken)},
		{"Chat", s.Telegram.ChatID},
	})

	sync := "never"
	if !lastSync.IsZero() {
		sync = lastSync.Local().Format(DateLayout)
	}
	url := s.ScriptURL
	if url == "" {
		url = md.Italic("not configured, local backup only")
	}
	section("Sync", [][]string{
		{"Web app", url},
		{"Last sync", sync},
	})
	return doc.String()
}
