package distributor

import (
	"fmt"

	"github.com/jakechorley/circle-teams/pkg/core/model"
	"github.com/jakechorley/circle-teams/pkg/cp"
)

// BuildModel declares the placement model for the working circle list.
//
// Every circle gets a team, a subteam and a combined slot index
// order = team*Subteams + subteam. Each of the three is channelled to a one-hot
// indicator array through an element constraint, so the capacity constraints
// can be written directly over the flat slot indicators.
//
// Constraints:
//   - the occupancy of every slot is at most the capacity
//   - the parts of a split circle share a team
//   - team t+1 is used only if team t is used
//   - within a team, subteam indices do not decrease along the circle list
func BuildModel(circles []model.Circle, friends []model.FriendSet, topology Topology, categories []model.Category) (*Model, error) {
	if err := topology.validate(); err != nil {
		return nil, err
	}

	index := make(map[model.CircleKey]int, len(circles))
	for i, c := range circles {
		if _, dup := index[c.Key()]; dup {
			return nil, fmt.Errorf("duplicate circle %s", c.Label())
		}
		index[c.Key()] = i
	}

	categoryIndex := make(map[model.Category]int, len(categories))
	for k, cat := range categories {
		categoryIndex[cat] = k
	}
	for _, c := range circles {
		if _, ok := categoryIndex[c.Category]; !ok {
			return nil, fmt.Errorf("circle %s has category %q outside the catalogue", c.Label(), c.Category)
		}
	}

	m := cp.NewModel()
	dm := &Model{
		CP:         m,
		Circles:    circles,
		Friends:    friends,
		Topology:   topology,
		Categories: categories,
	}

	teams, subteams, slots := topology.Teams, topology.Subteams, topology.Slots()

	// Variables
	for _, c := range circles {
		key := c.Label()
		dm.team = append(dm.team, m.NewIntVar(0, teams-1, fmt.Sprintf("CircleTeam[%s]", key)))
		dm.subteam = append(dm.subteam, m.NewIntVar(0, subteams-1, fmt.Sprintf("CircleSubteam[%s]", key)))
		dm.order = append(dm.order, m.NewIntVar(0, slots-1, fmt.Sprintf("CircleSlot[%s]", key)))
		dm.inTeam = append(dm.inTeam, newBoolVars(m, teams, "@CircleTeam["+key+"]"))
		dm.inSubteam = append(dm.inSubteam, newBoolVars(m, subteams, "@CircleSubteam["+key+"]"))
		dm.inSlot = append(dm.inSlot, newBoolVars(m, slots, "@CircleSlot["+key+"]"))
	}
	dm.teamUsed = newBoolVars(m, teams, "TeamUsed")
	dm.slotUsed = newBoolVars(m, slots, "SlotUsed")
	for t := 0; t < teams; t++ {
		dm.teamHasCategory = append(dm.teamHasCategory, newBoolVars(m, len(categories), fmt.Sprintf("TeamCategory[%d]", t)))
	}

	// Channelling
	for i := range circles {
		m.AddElement(dm.team[i], dm.inTeam[i], m.True())
		m.AddExactlyOne(dm.inTeam[i]...)

		m.AddElement(dm.subteam[i], dm.inSubteam[i], m.True())
		m.AddExactlyOne(dm.inSubteam[i]...)

		m.AddLinearEquality(dm.order[i], []cp.IntTerm{
			{Coef: subteams, Var: dm.team[i]},
			{Coef: 1, Var: dm.subteam[i]},
		}, 0)
		m.AddElement(dm.order[i], dm.inSlot[i], m.True())
		m.AddExactlyOne(dm.inSlot[i]...)
	}

	for t := 0; t < teams; t++ {
		m.AddMaxEquality(dm.teamUsed[t], column(dm.inTeam, t, nil))

		for k, cat := range categories {
			m.AddMaxEquality(dm.teamHasCategory[t][k], column(dm.inTeam, t, func(i int) bool {
				return circles[i].Category == cat
			}))
		}

		for s := 0; s < subteams; s++ {
			slot := t*subteams + s
			m.AddMaxEquality(dm.slotUsed[slot], column(dm.inSlot, slot, nil))
		}
	}

	// Slot capacity
	for slot := 0; slot < slots; slot++ {
		terms := make([]cp.BoolTerm, len(circles))
		for i, c := range circles {
			terms[i] = cp.BoolTerm{Coef: c.Size, Var: dm.inSlot[i][slot]}
		}
		m.AddLinearLessOrEqual(terms, topology.Capacity)
	}

	// Split parts share a team
	for _, set := range friends {
		for j := 0; j+1 < len(set); j++ {
			a, okA := index[set[j].Key()]
			b, okB := index[set[j+1].Key()]
			if !okA || !okB {
				return nil, fmt.Errorf("friend set of circle %d references a circle missing from the model", set[j].Origin)
			}
			m.AddEquality(dm.team[a], dm.team[b])
		}
	}

	// Symmetry breaking: teams are filled in index order
	for t := 0; t+1 < teams; t++ {
		m.AddImplication(dm.teamUsed[t+1], dm.teamUsed[t])
	}

	// Symmetry breaking: subteams follow circle order within a team. sameTeam is
	// forced true whenever both circles sit in the same team.
	if subteams > 1 {
		for i := range circles {
			for j := i + 1; j < len(circles); j++ {
				sameTeam := m.NewBoolVar(fmt.Sprintf("SameTeam[%d,%d]", i, j))
				for t := 0; t < teams; t++ {
					m.AddBoolOr(dm.inTeam[i][t].Not(), dm.inTeam[j][t].Not(), sameTeam)
				}
				m.AddLessOrEqual(dm.subteam[i], dm.subteam[j], sameTeam)
			}
		}
	}

	return dm, nil
}

func newBoolVars(m *cp.Model, n int, name string) []cp.BoolVar {
	vars := make([]cp.BoolVar, n)
	for i := range vars {
		vars[i] = m.NewBoolVar(fmt.Sprintf("%s[%d]", name, i))
	}
	return vars
}

// column selects indicator k of every circle accepted by keep (all circles when keep is nil)
func column(indicators [][]cp.BoolVar, k int, keep func(i int) bool) []cp.BoolVar {
	var out []cp.BoolVar
	for i, row := range indicators {
		if keep == nil || keep(i) {
			out = append(out, row[k])
		}
	}
	return out
}
