package model

import (
	"fmt"
	"strconv"
	"time"
)

// Category is the study programme a circle belongs to
type Category string

const (
	CategoryPhysics              Category = "Fyzika"
	CategoryMathematicalModeling Category = "Matematické Modelování"
	CategoryComputerScience      Category = "Informatika"
	CategoryGeneralMathematics   Category = "Obecná Matematika, MIT"
	CategoryFinancialMathematics Category = "Finanční Matematika"
	CategoryTeaching             Category = "Učitelství"
)

var allCategories = []Category{
	CategoryPhysics,
	CategoryMathematicalModeling,
	CategoryComputerScience,
	CategoryGeneralMathematics,
	CategoryFinancialMathematics,
	CategoryTeaching,
}

// AllCategories returns the category catalogue in declaration order
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

func (c Category) IsValid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory maps a display name to its Category
func ParseCategory(name string) (Category, error) {
	c := Category(name)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown category %q", name)
	}
	return c, nil
}

// SplitIDBase is the multiplier used to derive the id of a split part:
// part p of circle n has id SplitIDBase*n + p
const SplitIDBase = 100

// Circle is a group of people that is placed into a subteam as one unit
type Circle struct {
	// ID is the circle number, or the derived id for a split part
	ID int

	// Origin is the id of the circle this one was created from (equal to ID for originals)
	Origin int

	// Part is the split index, -1 for circles that were not split
	Part int

	// Size is the number of people in the circle
	Size int

	Category Category
}

// NewCircle creates an unsplit circle
func NewCircle(id, size int, category Category) Circle {
	return Circle{ID: id, Origin: id, Part: -1, Size: size, Category: category}
}

// NewCirclePart creates part p of the circle with the given origin id
func NewCirclePart(origin, part, size int, category Category) Circle {
	return Circle{
		ID:       SplitIDBase*origin + part,
		Origin:   origin,
		Part:     part,
		Size:     size,
		Category: category,
	}
}

// CircleKey identifies a circle by its origin and split index. Unlike ID it is
// unique for every origin, including circle 0.
type CircleKey struct {
	Origin int
	Part   int
}

// Key returns the identity of the circle
func (c Circle) Key() CircleKey {
	return CircleKey{Origin: c.Origin, Part: c.Part}
}

// IsPart reports whether the circle was produced by splitting
func (c Circle) IsPart() bool {
	return c.Part >= 0
}

// Label returns the display form of the circle: "12" or "12[b]" for parts
func (c Circle) Label() string {
	if !c.IsPart() {
		return strconv.Itoa(c.ID)
	}
	if c.Part < 26 {
		return fmt.Sprintf("%d[%c]", c.Origin, 'a'+rune(c.Part))
	}
	return fmt.Sprintf("%d[%d]", c.Origin, c.Part)
}

// FriendSet holds the parts of one split circle. All members must end up in the same team.
type FriendSet []Circle

// Status is the outcome of solving one configuration pair
type Status string

const (
	StatusUnknown    Status = "UNKNOWN"
	StatusInfeasible Status = "INFEASIBLE"
	StatusFeasible   Status = "FEASIBLE"
	StatusOptimal    Status = "OPTIMAL"
)

// Solved reports whether the status carries a distribution
func (s Status) Solved() bool {
	return s == StatusFeasible || s == StatusOptimal
}

// Subteam is one capacity bounded slot of a team
type Subteam struct {
	Index   int
	Circles []Circle
}

// Size returns the occupancy of the subteam
func (s Subteam) Size() int {
	total := 0
	for _, c := range s.Circles {
		total += c.Size
	}
	return total
}

// Team groups the subteams that share a team index
type Team struct {
	Index    int
	Subteams []Subteam
}

// Size returns the occupancy of the whole team
func (t Team) Size() int {
	total := 0
	for _, s := range t.Subteams {
		total += s.Size()
	}
	return total
}

// Categories returns the distinct categories present in the team, in catalogue order
func (t Team) Categories() []Category {
	present := make(map[Category]bool)
	for _, s := range t.Subteams {
		for _, c := range s.Circles {
			present[c.Category] = true
		}
	}
	var out []Category
	for _, c := range allCategories {
		if present[c] {
			out = append(out, c)
		}
	}
	return out
}

// Distribution is the nested team -> subteam -> circles placement, ordered by index
type Distribution []Team

// Circles returns every placed circle in team, subteam order
func (d Distribution) Circles() []Circle {
	var out []Circle
	for _, t := range d {
		for _, s := range t.Subteams {
			out = append(out, s.Circles...)
		}
	}
	return out
}

// Solution is the result of solving one (team count, subteam capacity) pair
type Solution struct {
	TeamCount       int
	SubteamCapacity int
	Status          Status

	// Objective is the value of the minimised expression, 0 when unsolved
	Objective int

	Distribution Distribution

	// Friends are the split parts that had to share a team for this pair
	Friends []FriendSet

	SolveTime time.Duration
}

// Name identifies the configuration pair, e.g. "4_22"
func (s Solution) Name() string {
	return fmt.Sprintf("%d_%d", s.TeamCount, s.SubteamCapacity)
}
