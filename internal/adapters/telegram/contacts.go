package telegram

import (
	"context"

	"tgcheck/internal/core/phonelist"
	"tgcheck/internal/platform/logger"
	dom "tgcheck/internal/services/checker/domain"

	"github.com/gotd/td/tg"
)

// transient contacts are created under this name
const (
	contactFirstName = "Check"
	contactLastName  = "User"
)

// contactsAPI is the contact list surface of the raw API client
type contactsAPI interface {
	ContactsImportContacts(ctx context.Context, contacts []tg.InputPhoneContact) (*tg.ContactsImportedContacts, error)
	ContactsDeleteContacts(ctx context.Context, id []tg.InputUserClass) (tg.UpdatesClass, error)
}

// Contacts implements the checker contacts port on the operator account
type Contacts struct {
	api contactsAPI
	log logger.Logger
}

var _ dom.Contacts = (*Contacts)(nil)

// Import adds batch to the contact list; the candidate index is the client id
func (c *Contacts) Import(ctx context.Context, batch []dom.Candidate) (dom.ImportOutcome, error) {
	in := make([]tg.InputPhoneContact, len(batch))
	for i, cand := range batch {
		in[i] = tg.InputPhoneContact{
			ClientID:  int64(cand.Index),
			Phone:     cand.Phone,
			FirstName: contactFirstName,
			LastName:  contactLastName,
		}
	}
	res, err := c.api.ContactsImportContacts(ctx, in)
	if err != nil {
		return dom.ImportOutcome{}, mapError(err, "contacts.importContacts")
	}
	out := outcomeFrom(res)
	c.log.Debug().
		Int("sent", len(in)).
		Int("imported", len(out.Imported)).
		Int("popular", len(out.Popular)).
		Int("retry", len(out.Retry)).
		Msg("contacts imported")
	return out, nil
}

// Delete removes the given users from the contact list
func (c *Contacts) Delete(ctx context.Context, refs []dom.ContactRef) error {
	if len(refs) == 0 {
		return nil
	}
	ids := make([]tg.InputUserClass, len(refs))
	for i, r := range refs {
		ids[i] = &tg.InputUser{UserID: r.UserID, AccessHash: r.AccessHash}
	}
	if _, err := c.api.ContactsDeleteContacts(ctx, ids); err != nil {
		return mapError(err, "contacts.deleteContacts")
	}
	c.log.Debug().Int("deleted", len(ids)).Msg("contacts deleted")
	return nil
}

func outcomeFrom(res *tg.ContactsImportedContacts) dom.ImportOutcome {
	out := dom.ImportOutcome{
		Imported: make(map[int64]dom.ContactRef, len(res.Imported)),
		Popular:  make(map[int64]int, len(res.PopularInvites)),
		Retry:    append([]int64(nil), res.RetryContacts...),
	}
	users := make(map[int64]dom.ContactRef, len(res.Users))
	for _, uc := range res.Users {
		u, ok := uc.(*tg.User)
		if !ok {
			continue
		}
		ref := dom.ContactRef{UserID: u.ID, AccessHash: u.AccessHash}
		users[u.ID] = ref
		out.Users = append(out.Users, dom.ImportedUser{Ref: ref, Phone: phonelist.Digits(u.Phone)})
	}
	for _, ic := range res.Imported {
		ref, ok := users[ic.UserID]
		if !ok {
			ref = dom.ContactRef{UserID: ic.UserID}
		}
		out.Imported[ic.ClientID] = ref
	}
	for _, p := range res.PopularInvites {
		out.Popular[p.ClientID] = p.Importers
	}
	return out
}
