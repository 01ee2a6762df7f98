package game

import (
	"math/rand"
	"time"

	"github.com/Hudmebac/heggiegame-sub000/internal/catalog"
	"github.com/google/uuid"
)

// Objective action keys. Venture actions are derived so one tracker covers
// every archetype.
const (
	ActionTrade  = "trade"
	ActionCombat = "combat"
)

func clickAction(v Venture) string { return "click:" + string(v) }

func tickAction(v Venture) string { return "tick:" + string(v) }

func missionAction(kind MissionKind) string { return "mission:" + string(kind) }

func objectiveFromTemplate(tpl catalog.ObjectiveTemplate, now time.Time) Objective {
	tasks := make([]ObjectiveTask, len(tpl.Tasks))
	for i, t := range tpl.Tasks {
		tasks[i] = ObjectiveTask{Action: t.Action, Target: t.Target}
	}
	return Objective{
		ID:        uuid.NewString(),
		Title:     tpl.Title,
		Tasks:     tasks,
		Reward:    tpl.Reward,
		StartedAt: now,
		TimeLimit: tpl.TimeLimit(),
	}
}

// progressObjectives counts one typed action against every active objective
// declaring it, then settles any objective whose sub-tasks are all met.
// Partial credit never completes early.
func progressObjectives(st GameState, action string, n int) GameState {
	for i := range st.Player.Objectives {
		for j := range st.Player.Objectives[i].Tasks {
			if st.Player.Objectives[i].Tasks[j].Action == action {
				st.Player.Objectives[i].Tasks[j].Count += n
			}
		}
	}
	return settleObjectives(st)
}

func settleObjectives(st GameState) GameState {
	kept := st.Player.Objectives[:0]
	for _, o := range st.Player.Objectives {
		if o.Complete() {
			st.Player.NetWorth += o.Reward
			st.Player.Reputation = clampRep(st.Player.Reputation + 1)
			continue
		}
		kept = append(kept, o)
	}
	st.Player.Objectives = kept
	return st
}

// applyObjectiveSweep drops expired-but-incomplete objectives without
// reward and tops the active list back up from the template pool.
func applyObjectiveSweep(cat *catalog.Catalog, st GameState, rng *rand.Rand, now time.Time) (GameState, []Objective) {
	var expired []Objective
	kept := st.Player.Objectives[:0]
	for _, o := range st.Player.Objectives {
		if o.Expired(now) {
			expired = append(expired, o)
			continue
		}
		kept = append(kept, o)
	}
	st.Player.Objectives = kept

	for len(st.Player.Objectives) < 2 && len(cat.Objectives) > 0 {
		tpl := cat.Objectives[rng.Intn(len(cat.Objectives))]
		if hasObjectiveTitled(st.Player.Objectives, tpl.Title) {
			break
		}
		st.Player.Objectives = append(st.Player.Objectives, objectiveFromTemplate(tpl, now))
	}
	return st, expired
}

func hasObjectiveTitled(objectives []Objective, title string) bool {
	for _, o := range objectives {
		if o.Title == title {
			return true
		}
	}
	return false
}
