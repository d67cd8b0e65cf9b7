package game

import "errors"

// WeaponID names an entry in the weapon catalog.
type WeaponID string

const (
	WeaponPistol  WeaponID = "pistol"
	WeaponShotgun WeaponID = "shotgun"
	WeaponSMG     WeaponID = "smg"
	WeaponRifle   WeaponID = "rifle"
)

// Shop rejections. A rejected request leaves cash and ownership untouched.
var (
	ErrUnknownWeapon     = errors.New("unknown weapon")
	ErrAlreadyOwned      = errors.New("weapon already owned")
	ErrNotOwned          = errors.New("weapon not owned")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Weapon is one catalog entry. Exactly one owned weapon is Selected.
type Weapon struct {
	ID         WeaponID `json:"id"`
	Name       string   `json:"name"`
	Damage     float64  `json:"damage"`
	FireRateMs float64  `json:"fireRateMs"`
	Range      float64  `json:"range"` // shown in the shop, not used by bullets
	Capacity   int      `json:"capacity"`
	ReloadMs   float64  `json:"reloadMs"`
	Cost       int      `json:"cost"`
	Pellets    int      `json:"pellets,omitempty"` // secondary pellets per shot
	Owned      bool     `json:"owned"`
	Selected   bool     `json:"selected"`
}

// Shotgun pellet shaping relative to the primary bullet.
const (
	pelletDamageMul = 0.5
	pelletSpeed     = 6.0
	pelletLife      = 40
	pelletSpread    = 0.3 // max angular offset either side, radians
	pelletSize      = 3.0
)

// DefaultCatalog returns a fresh catalog with only the pistol owned.
func DefaultCatalog() []Weapon {
	return []Weapon{
		{ID: WeaponPistol, Name: "Pistol", Damage: 25, FireRateMs: 300, Range: 200, Capacity: 30, ReloadMs: 1500, Cost: 0, Owned: true, Selected: true},
		{ID: WeaponShotgun, Name: "Shotgun", Damage: 60, FireRateMs: 800, Range: 120, Capacity: 8, ReloadMs: 2000, Cost: 500, Pellets: 5},
		{ID: WeaponSMG, Name: "SMG", Damage: 15, FireRateMs: 100, Range: 180, Capacity: 50, ReloadMs: 1800, Cost: 800},
		{ID: WeaponRifle, Name: "Assault Rifle", Damage: 35, FireRateMs: 150, Range: 300, Capacity: 40, ReloadMs: 2200, Cost: 1200},
	}
}

func (st *State) weapon(id WeaponID) *Weapon {
	for i := range st.Catalog {
		if st.Catalog[i].ID == id {
			return &st.Catalog[i]
		}
	}
	return nil
}

// equipped returns the player's current weapon. The catalog always holds the
// pistol, so a missing id falls back to it.
func (st *State) equipped() *Weapon {
	if w := st.weapon(st.Player.Weapon); w != nil {
		return w
	}
	return st.weapon(WeaponPistol)
}

// Catalog returns a copy of the weapon catalog.
func (s *Sim) Catalog() []Weapon {
	out := make([]Weapon, len(s.st.Catalog))
	copy(out, s.st.Catalog)
	return out
}

// Buy purchases a weapon the player can afford and does not own, then equips it.
func (s *Sim) Buy(id WeaponID) error {
	w := s.st.weapon(id)
	if w == nil {
		return ErrUnknownWeapon
	}
	if w.Owned {
		return ErrAlreadyOwned
	}
	if s.st.Economy.Cash < w.Cost {
		return ErrInsufficientFunds
	}
	s.st.Economy.Cash -= w.Cost
	w.Owned = true
	s.play(CuePurchase)
	s.events.Add(s.st.Tick, "--", "economy", "purchase", string(id), float64(w.Cost))
	s.log.Info().Str("weapon", string(id)).Int("cost", w.Cost).Int("cash", s.st.Economy.Cash).Msg("weapon purchased")
	return s.Equip(id)
}

// Equip selects an owned weapon and loads a full magazine.
func (s *Sim) Equip(id WeaponID) error {
	w := s.st.weapon(id)
	if w == nil {
		return ErrUnknownWeapon
	}
	if !w.Owned {
		return ErrNotOwned
	}
	for i := range s.st.Catalog {
		s.st.Catalog[i].Selected = false
	}
	w.Selected = true
	p := &s.st.Player
	p.Weapon = id
	p.Ammo = w.Capacity
	p.MaxAmmo = w.Capacity
	s.play(CueEquip)
	return nil
}

// PurchaseOrEquip equips an owned weapon or buys an unowned one, the way a
// shop card click behaves.
func (s *Sim) PurchaseOrEquip(id WeaponID) error {
	w := s.st.weapon(id)
	if w == nil {
		return ErrUnknownWeapon
	}
	if w.Owned {
		return s.Equip(id)
	}
	return s.Buy(id)
}
