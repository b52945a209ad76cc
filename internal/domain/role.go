package domain

// RoleTag represents a lane/position used to bucket heroes for recommendations
type RoleTag string

const (
	RoleSlayer  RoleTag = "Slayer"
	RoleFarm    RoleTag = "Farm"
	RoleMid     RoleTag = "Mid"
	RoleAbyssal RoleTag = "Abyssal"
	RoleSupport RoleTag = "Support"
)

// AllRoles contains all valid roles in display order
var AllRoles = []RoleTag{RoleSlayer, RoleFarm, RoleMid, RoleAbyssal, RoleSupport}

// RolePickOrder maps a team's n-th pick to the position it usually fills.
// Recorded match lineups list picks in the same order.
var RolePickOrder = []RoleTag{RoleSlayer, RoleMid, RoleFarm, RoleSupport, RoleAbyssal}

// IsValid checks if a role is valid
func (r RoleTag) IsValid() bool {
	switch r {
	case RoleSlayer, RoleFarm, RoleMid, RoleAbyssal, RoleSupport:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r RoleTag) String() string {
	return string(r)
}

// DisplayName returns a user-friendly display name for the role
func (r RoleTag) DisplayName() string {
	switch r {
	case RoleSlayer:
		return "Dark Slayer Lane"
	case RoleFarm:
		return "Jungle"
	case RoleMid:
		return "Mid Lane"
	case RoleAbyssal:
		return "Abyssal Dragon Lane"
	case RoleSupport:
		return "Roaming Support"
	default:
		return string(r)
	}
}

// ParseRole resolves a role name, case-sensitively, to a RoleTag
func ParseRole(s string) (RoleTag, error) {
	r := RoleTag(s)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// RoleTable maps each role to the names of heroes allowed to play it.
// A hero may appear under zero, one or several roles.
type RoleTable map[RoleTag][]string

// Heroes returns the allow-list for a role
func (t RoleTable) Heroes(role RoleTag) []string {
	return t[role]
}

// RolesFor returns every role whose allow-list contains the hero
func (t RoleTable) RolesFor(hero string) []RoleTag {
	var roles []RoleTag
	for _, role := range AllRoles {
		for _, name := range t[role] {
			if name == hero {
				roles = append(roles, role)
				break
			}
		}
	}
	return roles
}

// Clone returns a deep copy of the table
func (t RoleTable) Clone() RoleTable {
	out := make(RoleTable, len(t))
	for role, names := range t {
		out[role] = append([]string(nil), names...)
	}
	return out
}

// Rename replaces a hero name in every allow-list
func (t RoleTable) Rename(oldName, newName string) {
	for role, names := range t {
		for i, name := range names {
			if name == oldName {
				t[role][i] = newName
			}
		}
	}
}

// Remove deletes a hero from every allow-list
func (t RoleTable) Remove(hero string) {
	for role, names := range t {
		kept := names[:0]
		for _, name := range names {
			if name != hero {
				kept = append(kept, name)
			}
		}
		t[role] = kept
	}
}

// Assign sets exactly the given roles for a hero, removing it from the rest
func (t RoleTable) Assign(hero string, roles []RoleTag) {
	t.Remove(hero)
	for _, role := range roles {
		t[role] = append(t[role], hero)
	}
}

// DefaultRoleTable is the built-in position assignment used until a
// custom table has been saved.
func DefaultRoleTable() RoleTable {
	return RoleTable{
		RoleSlayer: {
			"Florentino", "Allain", "Yena", "Qi", "Ryoma", "Omen", "Riktor",
			"Lu Bu", "Maloch", "Amily", "Arthur", "Zuka", "Veres", "Wiro", "Bijan",
		},
		RoleFarm: {
			"Nakroth", "Murad", "Keera", "Quillen", "Zill", "Paine", "Kriknak",
			"Aoi", "Enzo", "Sinestrea", "Kaine", "Bright", "Wukong", "Butterfly",
		},
		RoleMid: {
			"Tulen", "Liliana", "Zata", "Raz", "Lauriel", "Iggy", "Aleister",
			"Dirak", "Krixi", "Azzen'Ka", "Ignis", "Bonnie", "Yue", "Sephera",
		},
		RoleAbyssal: {
			"Hayate", "Laville", "Capheny", "Elsu", "Violet", "Yorn", "Thorne",
			"Tel'Annas", "Slimz", "Fennik", "Valhein", "Lindis", "Eland'orr",
		},
		RoleSupport: {
			"Grakk", "Alice", "Krizzix", "Helen", "Annette", "Rouie", "Zip",
			"Thane", "Baldum", "Ormarr", "Arum", "Chaugnar", "Aya", "Airi",
		},
	}
}
