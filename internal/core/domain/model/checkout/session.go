package checkout

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"grocery/internal/core/domain/model/address"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
)

// ErrSessionIsNotConstructed is returned when a Session instance was not
// created through NewSession.
var ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession")

// Eligibility is the delivery eligibility verdict attached to the session's
// current location input.
type Eligibility int

const (
	// EligibilityUnknown means no verdict exists for the current input.
	EligibilityUnknown Eligibility = iota
	// EligibilityEligible means the address lies inside the service area.
	EligibilityEligible
	// EligibilityIneligible means the address lies outside the service area.
	EligibilityIneligible
)

// String implements fmt.Stringer.
func (e Eligibility) String() string {
	switch e {
	case EligibilityEligible:
		return "eligible"
	case EligibilityIneligible:
		return "ineligible"
	default:
		return "unknown"
	}
}

// DetectedLocation is what a geo resolution produces: a device position fix
// plus whatever address fields reverse geocoding recovered. Empty fields mean
// the resolver could not produce them.
type DetectedLocation struct {
	Point   kernel.GeoPoint
	Street  string
	City    string
	State   string
	Pincode string
}

// Session is the checkout draft a customer edits before placing an order.
//
// Every change to the location input (pincode or coordinates) bumps the
// input version and resets the eligibility verdict to unknown. Eligibility
// results and detected locations carry the version they were computed
// against so that stale ones are discarded or merged with manual edits
// winning.
//
// A customer's session is shared between concurrent requests (a manual edit
// can race an in-flight detection), so every method is safe for concurrent
// use; the version comparisons that arbitrate such races happen under the
// session's lock.
type Session struct {
	mu sync.Mutex

	customerID kernel.UUID

	street   string
	city     string
	state    string
	landmark string
	pincode  string
	coords   *kernel.GeoPoint

	version        uint64
	eligibility    Eligibility
	distanceKm     float64
	checkedVersion uint64

	updatedAt time.Time

	isConstructed bool
}

// NewSession creates an empty checkout session for a customer.
func NewSession(customerID kernel.UUID, now time.Time) (*Session, error) {
	if err := customerID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("customerID", err)
	}

	return &Session{
		customerID:    customerID,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// Validate ensures the Session was created through NewSession.
func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

// CustomerID returns the owner of the session.
func (s *Session) CustomerID() kernel.UUID {
	return s.customerID
}

// Street returns the draft street line.
func (s *Session) Street() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.street
}

// City returns the draft city.
func (s *Session) City() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.city
}

// State returns the draft state, possibly empty.
func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Landmark returns the draft landmark, possibly empty.
func (s *Session) Landmark() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.landmark
}

// PincodeInput returns the normalized pincode digits typed so far. The value
// may be shorter than a complete pincode while the customer is still typing.
func (s *Session) PincodeInput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pincode
}

// Coordinates returns a copy of the draft coordinates, or nil when none are
// set.
func (s *Session) Coordinates() *kernel.GeoPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coordinatesLocked()
}

// Version returns the current input version. It changes whenever the pincode
// or the coordinates change.
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// EligibilityState returns the verdict for the current input, or
// EligibilityUnknown when the input changed since the last check.
func (s *Session) EligibilityState() Eligibility {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eligibility
}

// DistanceKm returns the distance reported with the last applied verdict.
// Meaningful only when EligibilityState is not unknown.
func (s *Session) DistanceKm() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.distanceKm
}

// UpdatedAt returns the time of the last modification, used to expire
// abandoned sessions.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// SetStreet updates the street line. Street edits do not affect eligibility.
func (s *Session) SetStreet(street string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.street = strings.TrimSpace(street)
	s.updatedAt = now
}

// SetCity updates the city. City edits do not affect eligibility.
func (s *Session) SetCity(city string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.city = strings.TrimSpace(city)
	s.updatedAt = now
}

// SetState updates the state.
func (s *Session) SetState(state string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = strings.TrimSpace(state)
	s.updatedAt = now
}

// SetLandmark updates the landmark.
func (s *Session) SetLandmark(landmark string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.landmark = strings.TrimSpace(landmark)
	s.updatedAt = now
}

// SetPincode updates the pincode from raw input. The input is normalized; a
// change to the normalized digits bumps the input version and drops any
// eligibility verdict.
func (s *Session) SetPincode(raw string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := kernel.NormalizePincode(raw)
	if normalized == s.pincode {
		s.updatedAt = now
		return
	}

	s.pincode = normalized
	s.bumpInput(now)
}

// SetCoordinates updates the draft coordinates, bumping the input version
// when they actually change.
func (s *Session) SetCoordinates(point kernel.GeoPoint, now time.Time) error {
	if err := point.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.setCoordinatesLocked(point, now)
	return nil
}

// ClearCoordinates removes the draft coordinates.
func (s *Session) ClearCoordinates(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.coords == nil {
		s.updatedAt = now
		return
	}

	s.coords = nil
	s.bumpInput(now)
}

// ApplyDetectedLocation merges an auto-detected location into the draft.
// baseVersion is the input version captured when the detection started; if
// the input changed in the meantime, manual edits win and detected fields
// only fill in blanks. Detected coordinates are always applied since they
// have no manual counterpart to collide with.
func (s *Session) ApplyDetectedLocation(loc DetectedLocation, baseVersion uint64, now time.Time) error {
	if err := loc.Point.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	manualWins := s.version != baseVersion

	s.setCoordinatesLocked(loc.Point, now)

	if pin := kernel.NormalizePincode(loc.Pincode); pin != "" && (!manualWins || s.pincode == "") {
		if pin != s.pincode {
			s.pincode = pin
			s.bumpInput(now)
		}
	}
	if loc.Street != "" && (!manualWins || s.street == "") {
		s.street = strings.TrimSpace(loc.Street)
	}
	if loc.City != "" && (!manualWins || s.city == "") {
		s.city = strings.TrimSpace(loc.City)
	}
	if loc.State != "" && (!manualWins || s.state == "") {
		s.state = strings.TrimSpace(loc.State)
	}

	s.updatedAt = now
	return nil
}

// EligibilityInput snapshots the location input for a delivery eligibility
// check: the complete pincode (empty if still partial), a copy of the
// coordinates, and the version the eventual verdict must be tagged with. An
// error is returned when the session carries no usable location input.
func (s *Session) EligibilityInput() (string, *kernel.GeoPoint, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pincode := s.pincode
	if len(pincode) != kernel.PincodeLength {
		pincode = ""
	}

	if pincode == "" && s.coords == nil {
		return "", nil, 0, errs.NewValueIsRequiredError("pincode or coordinates")
	}

	return pincode, s.coordinatesLocked(), s.version, nil
}

// ApplyEligibility records an eligibility verdict. The verdict is discarded
// (returning false) when version no longer matches the current input.
func (s *Session) ApplyEligibility(eligible bool, distanceKm float64, version uint64, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if version != s.version {
		return false
	}

	if eligible {
		s.eligibility = EligibilityEligible
	} else {
		s.eligibility = EligibilityIneligible
	}
	s.distanceKm = distanceKm
	s.checkedVersion = version
	s.updatedAt = now
	return true
}

// IsReadyForCheckout reports whether an order can be placed from this
// session: the address fields are complete and the current input carries an
// eligible verdict.
func (s *Session) IsReadyForCheckout() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isReadyForCheckoutLocked()
}

// DeliveryAddress builds the delivery address snapshot for order placement.
// The session must be ready for checkout.
func (s *Session) DeliveryAddress() (address.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isReadyForCheckoutLocked() {
		return address.Address{}, errs.NewValueIsInvalidErrorWithCause("session",
			fmt.Errorf("checkout requires a complete address with a confirmed eligible location"))
	}

	pin, err := kernel.NewPincode(s.pincode)
	if err != nil {
		return address.Address{}, err
	}

	return address.NewAddress(s.street, s.city, s.state, pin, s.landmark, s.coordinatesLocked())
}

// IsExpired reports whether the session saw no activity for at least ttl.
func (s *Session) IsExpired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.updatedAt) >= ttl
}

// coordinatesLocked copies the draft coordinates. Callers must hold mu.
func (s *Session) coordinatesLocked() *kernel.GeoPoint {
	if s.coords == nil {
		return nil
	}
	c := *s.coords
	return &c
}

// setCoordinatesLocked stores a validated point, bumping the input version
// when it actually changes. Callers must hold mu.
func (s *Session) setCoordinatesLocked(point kernel.GeoPoint, now time.Time) {
	if s.coords != nil {
		same, err := s.coords.IsEqual(point)
		if err == nil && same {
			s.updatedAt = now
			return
		}
	}

	c := point
	s.coords = &c
	s.bumpInput(now)
}

// isReadyForCheckoutLocked holds the readiness rule. Callers must hold mu.
func (s *Session) isReadyForCheckoutLocked() bool {
	return s.eligibility == EligibilityEligible &&
		s.checkedVersion == s.version &&
		s.street != "" &&
		s.city != "" &&
		len(s.pincode) == kernel.PincodeLength
}

// bumpInput invalidates any eligibility verdict after a location change.
// Callers must hold mu.
func (s *Session) bumpInput(now time.Time) {
	s.version++
	s.eligibility = EligibilityUnknown
	s.distanceKm = 0
	s.updatedAt = now
}
