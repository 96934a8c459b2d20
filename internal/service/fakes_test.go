package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"petcare-service/internal/model"
)

// In-memory store fakes. They mirror the repository behavior closely
// enough for the service rules to be exercised without a database,
// including the atomic slot check in the appointment fake.

type fakeUserStore struct {
	users  map[uint]*model.User
	owners map[uint]*model.Owner
	vets   map[uint]*model.Veterinarian
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:  make(map[uint]*model.User),
		owners: make(map[uint]*model.Owner),
		vets:   make(map[uint]*model.Veterinarian),
		nextID: 1,
	}
}

func (f *fakeUserStore) CreateWithProfile(_ context.Context, u *model.User, owner *model.Owner, vet *model.Veterinarian) error {
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = u
	if owner != nil {
		owner.ID = f.nextID
		f.nextID++
		owner.UserID = u.ID
		f.owners[owner.ID] = owner
	}
	if vet != nil {
		vet.ID = f.nextID
		f.nextID++
		vet.UserID = u.ID
		f.vets[vet.ID] = vet
	}
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := f.users[id]
	if !ok || u.Status != model.UserStatusActive {
		return nil, ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeUserStore) Update(_ context.Context, u *model.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserStore) SetStatus(_ context.Context, id uint, status model.UserStatus) error {
	u, ok := f.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Status = status
	return nil
}

func (f *fakeUserStore) ListActive(_ context.Context) ([]model.UserAccount, error) {
	var out []model.UserAccount
	for _, u := range f.users {
		if u.Status != model.UserStatusActive {
			continue
		}
		out = append(out, model.UserAccount{
			UserID:   u.ID,
			FullName: u.FullName,
			Email:    u.Email,
			Role:     u.Role,
			Status:   u.Status,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (f *fakeUserStore) Search(_ context.Context, role model.UserRole, query string, limit int) ([]model.UserAccount, error) {
	var out []model.UserAccount
	for _, u := range f.users {
		if u.Status != model.UserStatusActive || u.Role != role {
			continue
		}
		if !strings.Contains(strings.ToLower(u.FullName), strings.ToLower(query)) {
			continue
		}
		out = append(out, model.UserAccount{UserID: u.ID, FullName: u.FullName, Role: u.Role})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeUserStore) OwnerByUserID(_ context.Context, userID uint) (*model.Owner, error) {
	for _, o := range f.owners {
		if o.UserID == userID {
			return o, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeUserStore) VetByUserID(_ context.Context, userID uint) (*model.Veterinarian, error) {
	for _, v := range f.vets {
		if v.UserID == userID {
			return v, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeUserStore) VetByID(_ context.Context, vetID uint) (*model.Veterinarian, error) {
	v, ok := f.vets[vetID]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (f *fakeUserStore) UpsertOwner(_ context.Context, o *model.Owner) error {
	for _, existing := range f.owners {
		if existing.UserID == o.UserID {
			existing.Phone = o.Phone
			existing.Address = o.Address
			return nil
		}
	}
	o.ID = f.nextID
	f.nextID++
	f.owners[o.ID] = o
	return nil
}

func (f *fakeUserStore) UpsertVet(_ context.Context, v *model.Veterinarian) error {
	for _, existing := range f.vets {
		if existing.UserID == v.UserID {
			existing.Phone = v.Phone
			existing.ClinicAddress = v.ClinicAddress
			existing.Specialization = v.Specialization
			return nil
		}
	}
	v.ID = f.nextID
	f.nextID++
	f.vets[v.ID] = v
	return nil
}

type fakePetStore struct {
	pets       map[uint]*model.Pet
	dependents map[uint]bool
	nextID     uint
}

func newFakePetStore() *fakePetStore {
	return &fakePetStore{pets: make(map[uint]*model.Pet), dependents: make(map[uint]bool), nextID: 1}
}

func (f *fakePetStore) Create(_ context.Context, p *model.Pet) error {
	p.ID = f.nextID
	f.nextID++
	f.pets[p.ID] = p
	return nil
}

func (f *fakePetStore) GetByID(_ context.Context, id uint) (*model.Pet, error) {
	p, ok := f.pets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (f *fakePetStore) List(_ context.Context, caller Caller) ([]model.Pet, error) {
	var out []model.Pet
	for _, p := range f.pets {
		if caller.IsOwner() && p.OwnerID != caller.OwnerID {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePetStore) Update(_ context.Context, p *model.Pet) error {
	f.pets[p.ID] = p
	return nil
}

func (f *fakePetStore) Delete(_ context.Context, id uint) error {
	if _, ok := f.pets[id]; !ok {
		return ErrNotFound
	}
	delete(f.pets, id)
	return nil
}

func (f *fakePetStore) HasDependents(_ context.Context, petID uint) (bool, error) {
	return f.dependents[petID], nil
}

func (f *fakePetStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.pets)), nil
}

type fakeAppointmentStore struct {
	// mu makes the check-then-insert atomic, like the advisory lock in
	// the real store, so concurrent booking attempts can be tested.
	mu           sync.Mutex
	appointments map[uint]*model.Appointment
	nextID       uint
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{appointments: make(map[uint]*model.Appointment), nextID: 1}
}

func (f *fakeAppointmentStore) CreateBooking(_ context.Context, a *model.Appointment, buffer time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.appointments {
		if existing.VetID != a.VetID || existing.Status.Terminal() {
			continue
		}
		diff := existing.AppointmentDate.Sub(a.AppointmentDate)
		if diff < 0 {
			diff = -diff
		}
		if diff <= buffer {
			return &ConflictError{VetID: a.VetID, At: existing.AppointmentDate}
		}
	}
	a.ID = f.nextID
	f.nextID++
	f.appointments[a.ID] = a
	return nil
}

func (f *fakeAppointmentStore) GetByID(_ context.Context, id uint) (*model.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

func (f *fakeAppointmentStore) UpdateStatus(_ context.Context, id uint, status model.AppointmentStatus) error {
	a, ok := f.appointments[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeAppointmentStore) List(_ context.Context, caller Caller) ([]model.Appointment, error) {
	var out []model.Appointment
	for _, a := range f.appointments {
		if caller.CanSeeAppointment(a) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AppointmentDate.After(out[j].AppointmentDate)
	})
	return out, nil
}

func (f *fakeAppointmentStore) ListBetween(_ context.Context, caller Caller, from, to time.Time, statuses []model.AppointmentStatus) ([]model.Appointment, error) {
	var out []model.Appointment
	for _, a := range f.appointments {
		if !caller.CanSeeAppointment(a) {
			continue
		}
		if a.AppointmentDate.Before(from) || !a.AppointmentDate.Before(to) {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, s := range statuses {
				if a.Status == s {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AppointmentDate.Before(out[j].AppointmentDate)
	})
	return out, nil
}

func (f *fakeAppointmentStore) CompleteConfirmed(_ context.Context, petID, vetID uint, from, to time.Time) (int64, error) {
	var n int64
	for _, a := range f.appointments {
		if a.PetID != petID || a.VetID != vetID || a.Status != model.StatusConfirmed {
			continue
		}
		if a.AppointmentDate.Before(from) || !a.AppointmentDate.Before(to) {
			continue
		}
		a.Status = model.StatusCompleted
		n++
	}
	return n, nil
}

func (f *fakeAppointmentStore) CountUpcoming(_ context.Context, from time.Time) (int64, error) {
	var n int64
	for _, a := range f.appointments {
		if !a.Status.Terminal() && !a.AppointmentDate.Before(from) {
			n++
		}
	}
	return n, nil
}

type fakeMedicalStore struct {
	vaccinations []*model.Vaccination
	medications  []*model.Medication
	pets         *fakePetStore
	nextID       uint
}

func newFakeMedicalStore(pets *fakePetStore) *fakeMedicalStore {
	return &fakeMedicalStore{pets: pets, nextID: 1}
}

func (f *fakeMedicalStore) CreateVaccination(_ context.Context, v *model.Vaccination) error {
	v.ID = f.nextID
	f.nextID++
	f.vaccinations = append(f.vaccinations, v)
	return nil
}

func (f *fakeMedicalStore) CreateMedication(_ context.Context, m *model.Medication) error {
	m.ID = f.nextID
	f.nextID++
	f.medications = append(f.medications, m)
	return nil
}

func (f *fakeMedicalStore) visible(caller Caller, petID, vetID uint) bool {
	switch {
	case caller.IsAdmin():
		return true
	case caller.IsVet():
		return vetID == caller.VetID
	default:
		pet, ok := f.pets.pets[petID]
		return ok && pet.OwnerID == caller.OwnerID
	}
}

func (f *fakeMedicalStore) ListVaccinations(_ context.Context, caller Caller) ([]model.Vaccination, error) {
	var out []model.Vaccination
	for _, v := range f.vaccinations {
		if f.visible(caller, v.PetID, v.VetID) {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeMedicalStore) ListMedications(_ context.Context, caller Caller) ([]model.Medication, error) {
	var out []model.Medication
	for _, m := range f.medications {
		if f.visible(caller, m.PetID, m.VetID) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMedicalStore) ListVaccinationsByPet(_ context.Context, petID uint) ([]model.Vaccination, error) {
	var out []model.Vaccination
	for _, v := range f.vaccinations {
		if v.PetID == petID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeMedicalStore) ListMedicationsByPet(_ context.Context, petID uint) ([]model.Medication, error) {
	var out []model.Medication
	for _, m := range f.medications {
		if m.PetID == petID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMedicalStore) RemindersDue(_ context.Context, caller Caller, from, to time.Time) ([]model.Reminder, error) {
	var out []model.Reminder
	for _, v := range f.vaccinations {
		if !f.visible(caller, v.PetID, v.VetID) {
			continue
		}
		due := v.DueDate()
		if due.Before(from) || due.After(to) {
			continue
		}
		out = append(out, model.Reminder{Type: "Vaccination", Details: v.VaccineName, DueOn: due})
	}
	for _, m := range f.medications {
		if m.EndDate == nil || !f.visible(caller, m.PetID, m.VetID) {
			continue
		}
		if m.EndDate.Before(from) || m.EndDate.After(to) {
			continue
		}
		out = append(out, model.Reminder{Type: "Medication", Details: m.MedicineName, DueOn: *m.EndDate})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueOn.Before(out[j].DueOn) })
	return out, nil
}

func (f *fakeMedicalStore) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.vaccinations) + len(f.medications)), nil
}

type fakeExpenseStore struct {
	expenses []*model.Expense
	nextID   uint
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{nextID: 1}
}

func (f *fakeExpenseStore) Create(_ context.Context, e *model.Expense) error {
	e.ID = f.nextID
	f.nextID++
	f.expenses = append(f.expenses, e)
	return nil
}

func (f *fakeExpenseStore) List(_ context.Context, caller Caller) ([]model.Expense, error) {
	var out []model.Expense
	for _, e := range f.expenses {
		if caller.IsOwner() && e.OwnerID != caller.OwnerID {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

type fakeStatsStore struct {
	activeUsers int64
	activities  []model.Activity
}

func (f *fakeStatsStore) CountActiveUsers(_ context.Context) (int64, error) {
	return f.activeUsers, nil
}

func (f *fakeStatsStore) RecentActivity(_ context.Context, limit int) ([]model.Activity, error) {
	if len(f.activities) > limit {
		return f.activities[:limit], nil
	}
	return f.activities, nil
}
