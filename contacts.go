package smartbiz

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/ttacon/libphonenumber"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// AddContact adds c to the contact book with a zero balance and returns it as
// stored. An empty id is generated.
func (l *Ledger) AddContact(c Contact) (Contact, error) {
	if c.ID == "" {
		c.ID = newID("c")
	}
	c.Balance = decimal.Zero
	c, err := l.checkContact(c)
	if err != nil {
		return Contact{}, err
	}
	if l.contactIndex(c.ID) >= 0 {
		return Contact{}, fmt.Errorf("contact %q: %w", c.ID, ErrDuplicate)
	}
	l.contacts = append(l.contacts, c)
	return c, nil
}

// UpdateContact replaces the details of the contact with the same id. The
// balance is owned by the ledger and is kept.
func (l *Ledger) UpdateContact(c Contact) error {
	i := l.contactIndex(c.ID)
	if i < 0 {
		return fmt.Errorf("contact %q: %w", c.ID, ErrNotFound)
	}
	c, err := l.checkContact(c)
	if err != nil {
		return err
	}
	c.Balance = l.contacts[i].Balance
	l.contacts[i] = c
	return nil
}

// DeleteContact removes a contact. Past transactions keep their copy of its
// name.
func (l *Ledger) DeleteContact(id string) error {
	i := l.contactIndex(id)
	if i < 0 {
		return fmt.Errorf("contact %q: %w", id, ErrNotFound)
	}
	l.contacts = slices.Delete(l.contacts, i, i+1)
	return nil
}

// checkContact validates c and returns it with normalised fields.
func (l *Ledger) checkContact(c Contact) (Contact, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	if c.Name == "" {
		return c, fmt.Errorf("%w: contact name is required", ErrInvalid)
	}
	if c.Type != Customer && c.Type != Supplier {
		return c, fmt.Errorf("%w: contact type %q", ErrInvalid, c.Type)
	}
	if err := validate.Var(c.Email, "omitempty,email"); err != nil {
		return c, fmt.Errorf("%w: email %q of %s", ErrInvalid, c.Email, c.Name)
	}
	if c.Phone != "" {
		phone, err := NormalizePhone(c.Phone, l.Region)
		if err != nil {
			return c, fmt.Errorf("%w: phone of %s: %v", ErrInvalid, c.Name, err)
		}
		c.Phone = phone
	}
	return c, nil
}

// NormalizePhone checks that phone is a valid number in region (an ISO 3166
// code) and returns it in national format without separators, as written on
// receipts: "090.123.4567" becomes "0901234567".
func NormalizePhone(phone, region string) (string, error) {
	if region == "" {
		region = "VN"
	}
	p, err := libphonenumber.Parse(phone, region)
	if err != nil {
		return "", fmt.Errorf("cannot parse %q: %w", phone, err)
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", fmt.Errorf("%q is not a valid phone number", phone)
	}
	national := libphonenumber.Format(p, libphonenumber.NATIONAL)
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '+' {
			return r
		}
		return -1
	}, national), nil
}

// SearchContacts returns the contacts of type ct (any type when empty) whose
// name or phone contains term, ignoring case and diacritics.
func (l *Ledger) SearchContacts(ct ContactType, term string) []Contact {
	term = Fold(strings.TrimSpace(term))
	var found []Contact
	for _, c := range l.contacts {
		if ct != "" && c.Type != ct {
			continue
		}
		if term == "" || strings.Contains(Fold(c.Name), term) || strings.Contains(c.Phone, term) {
			found = append(found, c)
		}
	}
	return found
}

// History returns the transactions of a contact, newest first.
func (l *Ledger) History(contactID string) []Transaction {
	var txs []Transaction
	for _, tx := range l.transactions {
		if tx.ContactID == contactID {
			txs = append(txs, tx.Clone())
		}
	}
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date) })
	return txs
}
