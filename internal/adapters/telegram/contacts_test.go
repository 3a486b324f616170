package telegram

import (
	"context"
	"testing"

	perr "tgcheck/internal/platform/errors"
	dom "tgcheck/internal/services/checker/domain"

	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
)

type fakeContactsAPI struct {
	sent      []tg.InputPhoneContact
	deleted   []tg.InputUserClass
	importRes *tg.ContactsImportedContacts
	importErr error
	deleteErr error
}

func (f *fakeContactsAPI) ContactsImportContacts(_ context.Context, in []tg.InputPhoneContact) (*tg.ContactsImportedContacts, error) {
	f.sent = append(f.sent, in...)
	if f.importErr != nil {
		return nil, f.importErr
	}
	if f.importRes == nil {
		return &tg.ContactsImportedContacts{}, nil
	}
	return f.importRes, nil
}

func (f *fakeContactsAPI) ContactsDeleteContacts(_ context.Context, ids []tg.InputUserClass) (tg.UpdatesClass, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.deleted = append(f.deleted, ids...)
	return &tg.Updates{}, nil
}

func TestImport_MapsOutcome(t *testing.T) {
	t.Parallel()
	api := &fakeContactsAPI{importRes: &tg.ContactsImportedContacts{
		Imported:       []tg.ImportedContact{{UserID: 100, ClientID: 0}},
		PopularInvites: []tg.PopularContact{{ClientID: 1, Importers: 4}},
		RetryContacts:  []int64{2},
		Users: []tg.UserClass{
			&tg.User{ID: 100, AccessHash: 555, Phone: "15550000000"},
			&tg.UserEmpty{ID: 7},
		},
	}}
	c := &Contacts{api: api}
	batch := []dom.Candidate{
		{Index: 0, Raw: "+1 555 000 0000", Phone: "+15550000000"},
		{Index: 1, Raw: "+15550000001", Phone: "+15550000001"},
		{Index: 2, Raw: "+15550000002", Phone: "+15550000002"},
	}

	out, err := c.Import(context.Background(), batch)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(api.sent) != 3 || api.sent[1].ClientID != 1 || api.sent[1].Phone != "+15550000001" || api.sent[0].FirstName != "Check" {
		t.Fatalf("sent contacts mismatch: %+v", api.sent)
	}
	if ref := out.Imported[0]; ref.UserID != 100 || ref.AccessHash != 555 {
		t.Fatalf("imported ref = %+v", ref)
	}
	if len(out.Users) != 1 || out.Users[0].Phone != "15550000000" {
		t.Fatalf("users = %+v", out.Users)
	}
	if out.Popular[1] != 4 || len(out.Retry) != 1 || out.Retry[0] != 2 {
		t.Fatalf("popular=%v retry=%v", out.Popular, out.Retry)
	}
	if refs := out.Refs(); len(refs) != 1 {
		t.Fatalf("refs = %+v, want one deduplicated user", refs)
	}
}

func TestImport_MapsFlood(t *testing.T) {
	t.Parallel()
	c := &Contacts{api: &fakeContactsAPI{importErr: tgerr.New(420, "FLOOD_WAIT_60")}}
	_, err := c.Import(context.Background(), []dom.Candidate{{Phone: "+1"}})
	if !perr.IsCode(err, perr.ErrorCodeTooManyRequests) {
		t.Fatalf("err = %v, want too many requests", err)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()
	api := &fakeContactsAPI{}
	c := &Contacts{api: api}

	if err := c.Delete(context.Background(), nil); err != nil || len(api.deleted) != 0 {
		t.Fatalf("empty delete should be a no-op")
	}
	if err := c.Delete(context.Background(), []dom.ContactRef{{UserID: 1, AccessHash: 2}}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	u, ok := api.deleted[0].(*tg.InputUser)
	if !ok || u.UserID != 1 || u.AccessHash != 2 {
		t.Fatalf("deleted = %#v", api.deleted)
	}

	api.deleteErr = tgerr.New(500, "INTERNAL")
	if err := c.Delete(context.Background(), []dom.ContactRef{{UserID: 1}}); !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("err = %v, want upstream", err)
	}
}
