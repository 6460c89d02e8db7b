package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/common/logger"
	"github.com/storeline/pos/common/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCustomerStore is an in-memory CustomerStore with the same supersede
// semantics as the Postgres repository: the deactivation step only hits a
// still-active row, so a second update of the same version is refused.
type fakeCustomerStore struct {
	rows map[uuid.UUID]*models.Customer
}

func newFakeCustomerStore() *fakeCustomerStore {
	return &fakeCustomerStore{rows: make(map[uuid.UUID]*models.Customer)}
}

func (f *fakeCustomerStore) Insert(_ context.Context, c *models.Customer) error {
	clone := *c
	f.rows[c.ID] = &clone
	return nil
}

func (f *fakeCustomerStore) Supersede(_ context.Context, existingID uuid.UUID, next *models.Customer) error {
	existing, ok := f.rows[existingID]
	if !ok {
		return models.ErrNotFound
	}
	if !existing.IsActive {
		return models.ErrVersionSuperseded
	}

	existing.IsActive = false
	successorID := next.ID
	existing.ReplacedBy = &successorID

	clone := *next
	f.rows[next.ID] = &clone
	return nil
}

func (f *fakeCustomerStore) GetByID(_ context.Context, id uuid.UUID) (*models.Customer, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCustomerStore) FindActiveByField(_ context.Context, field models.DuplicateField, value string) (*models.Customer, error) {
	for _, c := range f.rows {
		if !c.IsActive {
			continue
		}
		var candidate string
		switch field {
		case models.DuplicateByName:
			candidate = c.Name
		case models.DuplicateByEmail:
			candidate = c.Email
		case models.DuplicateByPhone:
			candidate = c.Phone
		}
		if candidate != "" && strings.EqualFold(candidate, value) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerStore) ListActive(_ context.Context, limit, offset int) ([]*models.Customer, error) {
	var out []*models.Customer
	for _, c := range f.rows {
		if c.IsActive {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeCustomerStore) Deactivate(_ context.Context, id uuid.UUID) error {
	c, ok := f.rows[id]
	if !ok || !c.IsActive {
		return models.ErrNotFound
	}
	c.IsActive = false
	return nil
}

func newTestCustomerService(store CustomerStore) *CustomerService {
	log := logger.New("error", "text")
	audit := NewAuditService(queue.NewMemoryQueue(16, log), nil, log)
	return NewCustomerService(store, audit, log)
}

func managerSession() models.Session {
	return models.Session{UserID: uuid.NewString(), DisplayName: "Mgr", Role: models.RoleManager}
}

func cashierSession() models.Session {
	return models.Session{UserID: uuid.NewString(), DisplayName: "Till", Role: models.RoleCashier}
}

func TestCreateCustomer_DuplicateName(t *testing.T) {
	store := newFakeCustomerStore()
	svc := newTestCustomerService(store)
	session := managerSession()
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, session, models.CustomerAttrs{Name: "Acme"})
	require.NoError(t, err)

	before := len(store.rows)
	_, err = svc.CreateCustomer(ctx, session, models.CustomerAttrs{Name: "acme", Email: "other@x.com"})
	require.Error(t, err)

	dup, ok := models.IsDuplicateEntity(err)
	require.True(t, ok)
	assert.Equal(t, models.DuplicateByName, dup.Field)
	assert.Equal(t, "Acme", dup.EntityName)
	assert.Equal(t, before, len(store.rows), "duplicate create must not insert")
}

func TestCreateCustomer_NameMatchWinsOverEmail(t *testing.T) {
	store := newFakeCustomerStore()
	svc := newTestCustomerService(store)
	session := managerSession()
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, session, models.CustomerAttrs{Name: "Acme", Email: "sales@acme.com"})
	require.NoError(t, err)

	// Collides on both name and email; the name probe runs first
	_, err = svc.CreateCustomer(ctx, session, models.CustomerAttrs{Name: "Acme", Email: "sales@acme.com"})
	dup, ok := models.IsDuplicateEntity(err)
	require.True(t, ok)
	assert.Equal(t, models.DuplicateByName, dup.Field)
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	store := newFakeCustomerStore()
	svc := newTestCustomerService(store)
	session := managerSession()
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, session, models.CustomerAttrs{Name: "Acme", Email: "sales@acme.com"})
	require.NoError(t, err)

	_, err = svc.CreateCustomer(ctx, session, models.CustomerAttrs{Name: "Other", Email: "Sales@Acme.com"})
	dup, ok := models.IsDuplicateEntity(err)
	require.True(t, ok)
	assert.Equal(t, models.DuplicateByEmail, dup.Field)
}

func TestUpdateCustomer_LinksVersions(t *testing.T) {
	store := newFakeCustomerStore()
	svc := newTestCustomerService(store)
	session := managerSession()
	ctx := context.Background()

	created, err := svc.CreateCustomer(ctx, session, models.CustomerAttrs{Name: "Bob"})
	require.NoError(t, err)

	updated, err := svc.UpdateCustomer(ctx, session, created.ID, models.CustomerAttrs{Name: "Bob Jr"})
	require.NoError(t, err)

	require.NotNil(t, updated.PreviousVersion)
	assert.Equal(t, created.ID, *updated.PreviousVersion)

	old, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, old.IsActive)
	require.NotNil(t, old.ReplacedBy)
	assert.Equal(t, updated.ID, *old.ReplacedBy)
}

func TestUpdateCustomer_StaleVersionRefused(t *testing.T) {
	store := newFakeCustomerStore()
	svc := newTestCustomerService(store)
	session := managerSession()
	ctx := context.Background()

	created, err := svc.CreateCustomer(ctx, session, models.CustomerAttrs{Name: "Bob"})
	require.NoError(t, err)

	_, err = svc.UpdateCustomer(ctx, session, created.ID, models.CustomerAttrs{Name: "Bob Jr"})
	require.NoError(t, err)

	// Second update of the same (now superseded) version loses
	_, err = svc.UpdateCustomer(ctx, session, created.ID, models.CustomerAttrs{Name: "Robert"})
	assert.ErrorIs(t, err, models.ErrVersionSuperseded)
}

func TestUpdateCustomer_UnknownID(t *testing.T) {
	svc := newTestCustomerService(newFakeCustomerStore())

	_, err := svc.UpdateCustomer(context.Background(), managerSession(), uuid.New(), models.CustomerAttrs{Name: "X"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetHistory_OldestFirstWithDiffs(t *testing.T) {
	store := newFakeCustomerStore()
	svc := newTestCustomerService(store)
	session := managerSession()
	ctx := context.Background()

	a, err := svc.CreateCustomer(ctx, session, models.CustomerAttrs{Name: "Bob"})
	require.NoError(t, err)
	b, err := svc.UpdateCustomer(ctx, session, a.ID, models.CustomerAttrs{Name: "Bob Jr"})
	require.NoError(t, err)
	c, err := svc.UpdateCustomer(ctx, session, b.ID, models.CustomerAttrs{Name: "Robert"})
	require.NoError(t, err)

	history, err := svc.GetHistory(ctx, session, c.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.Equal(t, a.ID, history[0].Customer.ID)
	assert.Equal(t, b.ID, history[1].Customer.ID)
	assert.Equal(t, c.ID, history[2].Customer.ID)

	assert.Nil(t, history[0].Diff, "chain head has nothing to diff against")
	assert.JSONEq(t, `{"name":"Bob Jr"}`, string(history[1].Diff))
	assert.JSONEq(t, `{"name":"Robert"}`, string(history[2].Diff))
}

func TestGetHistory_TruncatesBrokenChain(t *testing.T) {
	store := newFakeCustomerStore()
	svc := newTestCustomerService(store)
	session := managerSession()
	ctx := context.Background()

	missing := uuid.New()
	head := models.NewCustomer(models.CustomerAttrs{Name: "Orphan"})
	head.PreviousVersion = &missing
	require.NoError(t, store.Insert(ctx, head))

	history, err := svc.GetHistory(ctx, session, head.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, head.ID, history[0].Customer.ID)
}

func TestGetCustomer_MasksContactsWithoutClearance(t *testing.T) {
	store := newFakeCustomerStore()
	svc := newTestCustomerService(store)
	ctx := context.Background()

	created, err := svc.CreateCustomer(ctx, managerSession(), models.CustomerAttrs{
		Name:    "Acme",
		Email:   "sales@acme.com",
		Phone:   "+15551234567",
		Address: "12 Main Street",
	})
	require.NoError(t, err)

	// Cashiers may write entities but not see raw contact fields
	got, err := svc.GetCustomer(ctx, cashierSession(), created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "sales@acme.com", got.Email)
	assert.Contains(t, got.Email, "@acme.com")
	assert.Contains(t, got.Phone, "*")
	assert.Contains(t, got.Address, "*")

	// Managers see everything
	raw, err := svc.GetCustomer(ctx, managerSession(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "sales@acme.com", raw.Email)
}

func TestCreateCustomer_ForbiddenForViewer(t *testing.T) {
	svc := newTestCustomerService(newFakeCustomerStore())
	viewer := models.Session{UserID: uuid.NewString(), Role: models.RoleViewer}

	_, err := svc.CreateCustomer(context.Background(), viewer, models.CustomerAttrs{Name: "Acme"})
	assert.ErrorIs(t, err, models.ErrForbidden)
}
