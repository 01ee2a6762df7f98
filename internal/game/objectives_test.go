package game

import (
	"math/rand"
	"testing"
	"time"
)

func twoTaskObjective(now time.Time) Objective {
	return Objective{
		ID:    "o1",
		Title: "Double Duty",
		Tasks: []ObjectiveTask{
			{Action: ActionTrade, Target: 2},
			{Action: ActionCombat, Target: 1},
		},
		Reward:    1_000,
		StartedAt: now,
		TimeLimit: 10 * time.Minute,
	}
}

func TestObjectiveNeedsEverySubTask(t *testing.T) {
	_, st := testState(t)
	st.Player.NetWorth = 0
	st.Player.Objectives = []Objective{twoTaskObjective(testEpoch)}

	st = progressObjectives(st, ActionTrade, 2)
	if st.Player.NetWorth != 0 {
		t.Fatalf("partial objective paid out: %d", st.Player.NetWorth)
	}
	if len(st.Player.Objectives) != 1 {
		t.Fatalf("partial objective was removed")
	}

	st = progressObjectives(st, ActionCombat, 1)
	if st.Player.NetWorth != 1_000 {
		t.Fatalf("completed objective reward = %d, want 1000", st.Player.NetWorth)
	}
	if len(st.Player.Objectives) != 0 {
		t.Fatalf("completed objective still listed")
	}
}

func TestObjectiveRewardPaidOnce(t *testing.T) {
	_, st := testState(t)
	st.Player.NetWorth = 0
	st.Player.Objectives = []Objective{twoTaskObjective(testEpoch)}

	st = progressObjectives(st, ActionTrade, 5)
	st = progressObjectives(st, ActionCombat, 5)
	st = progressObjectives(st, ActionCombat, 5)
	if st.Player.NetWorth != 1_000 {
		t.Fatalf("reward = %d, want exactly 1000", st.Player.NetWorth)
	}
}

func TestObjectiveSweepDropsExpiredWithoutReward(t *testing.T) {
	cat, st := testState(t)
	st.Player.NetWorth = 0
	expired := twoTaskObjective(testEpoch)
	expired.Tasks[0].Count = 2 // partially done, still incomplete
	st.Player.Objectives = []Objective{expired}

	next, dropped := applyObjectiveSweep(cat, st, rand.New(rand.NewSource(1)), testEpoch.Add(time.Hour))
	if next.Player.NetWorth != 0 {
		t.Fatalf("expired objective paid out: %d", next.Player.NetWorth)
	}
	if len(dropped) != 1 || dropped[0].ID != "o1" {
		t.Fatalf("dropped = %+v, want the expired objective", dropped)
	}
	for _, o := range next.Player.Objectives {
		if o.ID == "o1" {
			t.Fatalf("expired objective still active")
		}
	}
}

func TestObjectiveSweepTopsUpBoard(t *testing.T) {
	cat, st := testState(t)
	st.Player.Objectives = nil

	next, _ := applyObjectiveSweep(cat, st, rand.New(rand.NewSource(1)), testEpoch)
	if len(next.Player.Objectives) == 0 {
		t.Fatalf("sweep did not replenish objectives")
	}
	if len(next.Player.Objectives) > 2 {
		t.Fatalf("too many active objectives: %d", len(next.Player.Objectives))
	}
}
