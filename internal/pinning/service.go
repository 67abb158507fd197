package pinning

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"librarybox.klederson.com/internal/geo"
	"librarybox.klederson.com/internal/geocode"
	"librarybox.klederson.com/internal/store"
)

// BoxType is the kind of box being pinned.
type BoxType string

const (
	BoxPublic  BoxType = "Public"
	BoxPrivate BoxType = "Private"
)

// ErrUnknownBoxType is returned for box types other than Public and Private.
var ErrUnknownBoxType = eris.New("pinning: unknown box type")

// ErrNotPinnable is returned when submitting a check that did not pass validation.
var ErrNotPinnable = eris.New("pinning: address not valid for pinning")

// ParseBoxType accepts box types case-insensitively.
func ParseBoxType(s string) (BoxType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public":
		return BoxPublic, nil
	case "private":
		return BoxPrivate, nil
	}
	return "", eris.Wrapf(ErrUnknownBoxType, "pinning: box type %q", s)
}

// Outcome is the typed result of a submission.
type Outcome int

const (
	OutcomeSaved Outcome = iota
	OutcomeNotFound
	OutcomeConflict
	OutcomeTransient
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeConflict:
		return "conflict"
	case OutcomeTransient:
		return "transient-failure"
	default:
		return "failed"
	}
}

// Geocoder is the subset of geocode.Geocoder the service uses.
type Geocoder interface {
	Forward(ctx context.Context, address string) (geocode.Result, error)
	Reverse(ctx context.Context, loc geo.Location) (geocode.Result, error)
}

// RecordStore is the subset of store.Store the service uses.
type RecordStore interface {
	Save(ctx context.Context, rec *store.Record) error
	Fetch(ctx context.Context, id string) (*store.Record, error)
	ListLocations(ctx context.Context) ([]geo.Location, error)
}

// Service validates addresses and pins boxes.
type Service struct {
	geocoder Geocoder
	records  RecordStore
	newID    func() string
}

// NewService wires a geocoder and a record store.
func NewService(g Geocoder, rs RecordStore) *Service {
	return &Service{
		geocoder: g,
		records:  rs,
		newID:    func() string { return uuid.New().String() },
	}
}

// Check is the result of validating one address.
type Check struct {
	Input     string
	Candidate *geocode.Candidate
	PinCount  int
	Verdict   Verdict
	Message   string
}

// CanPin reports whether the check allows submitting.
func (c Check) CanPin() bool {
	return c.Verdict == VerdictValid && c.Candidate != nil
}

// Check geocodes the address and refreshes the pin set concurrently, then
// validates the first candidate against the pins.
func (s *Service) Check(ctx context.Context, address string) (Check, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return newCheck(address, nil, 0, VerdictNoAddress), nil
	}

	var (
		res  geocode.Result
		pins []geo.Location
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res, err = s.geocoder.Forward(gctx, address)
		return eris.Wrap(err, "pinning: geocode address")
	})
	g.Go(func() error {
		var err error
		pins, err = s.records.ListLocations(gctx)
		return eris.Wrap(err, "pinning: refresh pins")
	})
	if err := g.Wait(); err != nil {
		return Check{}, err
	}

	return s.evaluate(address, res, pins), nil
}

// CheckLocation resolves the operator's position to an address and
// validates it.
func (s *Service) CheckLocation(ctx context.Context, loc geo.Location) (Check, error) {
	res, err := s.geocoder.Reverse(ctx, loc)
	if err != nil {
		return Check{}, eris.Wrap(err, "pinning: reverse geocode")
	}
	first, ok := res.First()
	if !ok {
		return newCheck(loc.String(), nil, 0, VerdictNoAddress), nil
	}
	return s.Check(ctx, first.Address)
}

func (s *Service) evaluate(input string, res geocode.Result, pins []geo.Location) Check {
	first, ok := res.First()
	if !ok {
		return newCheck(input, nil, len(pins), VerdictNoAddress)
	}
	verdict := Validate(&first.Location, pins)
	zap.L().Debug("pinning: validated address",
		zap.String("address", first.Address),
		zap.Stringer("verdict", verdict),
		zap.Int("pins", len(pins)),
	)
	return newCheck(input, &first, len(pins), verdict)
}

func newCheck(input string, c *geocode.Candidate, pins int, v Verdict) Check {
	addr := input
	if c != nil {
		addr = c.Address
	}
	return Check{
		Input:     input,
		Candidate: c,
		PinCount:  pins,
		Verdict:   v,
		Message:   v.Message(addr),
	}
}

// Submit saves the checked address as a new pin. An insert that collides
// with an existing ID is retried once under a fresh ID; the existing record
// is never touched.
func (s *Service) Submit(ctx context.Context, c Check, boxType BoxType) (Outcome, *store.Record, error) {
	if !c.CanPin() {
		return OutcomeFailed, nil, eris.Wrapf(ErrNotPinnable, "pinning: verdict %s", c.Verdict)
	}
	bt, err := ParseBoxType(string(boxType))
	if err != nil {
		return OutcomeFailed, nil, err
	}

	local := &store.Record{
		ID:       s.newID(),
		Address:  c.Candidate.Address,
		BoxType:  string(bt),
		Location: c.Candidate.Location,
	}

	err = s.records.Save(ctx, local)
	if eris.Is(err, store.ErrConflict) {
		zap.L().Warn("pinning: record id taken, retrying with a fresh id", zap.String("id", local.ID))
		local.ID = s.newID()
		err = s.records.Save(ctx, local)
	}
	if err != nil {
		return outcomeFor(err), nil, eris.Wrap(err, "pinning: save record")
	}
	zap.L().Info("pinning: box pinned", zap.String("id", local.ID), zap.String("address", local.Address))
	return OutcomeSaved, local, nil
}

// SetBoxType changes the type of a pinned box. When another writer moved the
// record on in between, the new type is merged onto the server copy and
// saved exactly once more.
func (s *Service) SetBoxType(ctx context.Context, id string, boxType BoxType) (Outcome, *store.Record, error) {
	bt, err := ParseBoxType(string(boxType))
	if err != nil {
		return OutcomeFailed, nil, err
	}
	rec, err := s.records.Fetch(ctx, id)
	if err != nil {
		return outcomeFor(err), nil, eris.Wrap(err, "pinning: fetch record")
	}
	rec.BoxType = string(bt)
	return s.update(ctx, rec, &store.Record{BoxType: string(bt)})
}

// update saves rec and, on a version conflict, applies edit to the fresh
// server copy before one final save.
func (s *Service) update(ctx context.Context, rec, edit *store.Record) (Outcome, *store.Record, error) {
	err := s.records.Save(ctx, rec)
	if err == nil {
		zap.L().Info("pinning: record updated", zap.String("id", rec.ID), zap.Int64("version", rec.Version))
		return OutcomeSaved, rec, nil
	}
	if !eris.Is(err, store.ErrConflict) {
		return outcomeFor(err), nil, eris.Wrap(err, "pinning: update record")
	}

	zap.L().Warn("pinning: update conflicted, merging with server copy", zap.String("id", rec.ID))
	server, err := s.records.Fetch(ctx, rec.ID)
	if err != nil {
		return outcomeFor(err), nil, eris.Wrap(err, "pinning: fetch conflicting record")
	}
	server.Merge(edit)
	if err := s.records.Save(ctx, server); err != nil {
		return outcomeFor(err), nil, eris.Wrap(err, "pinning: resave merged record")
	}
	zap.L().Info("pinning: record updated after merge", zap.String("id", server.ID), zap.Int64("version", server.Version))
	return OutcomeSaved, server, nil
}

func outcomeFor(err error) Outcome {
	switch {
	case eris.Is(err, store.ErrNotFound):
		return OutcomeNotFound
	case eris.Is(err, store.ErrConflict):
		return OutcomeConflict
	case eris.Is(err, store.ErrTransient):
		return OutcomeTransient
	default:
		return OutcomeFailed
	}
}
