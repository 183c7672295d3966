package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProject(t *testing.T, resources []*Resource, tasks ...*Task) *Project {
	t.Helper()
	p := NewProject("test")
	for _, r := range resources {
		require.NoError(t, p.AddResource(r))
	}
	for _, task := range tasks {
		require.NoError(t, p.AddTask(task))
	}
	return p
}

func TestProject_AddTaskRecomputesBaseline(t *testing.T) {
	p := NewProject("p")
	require.NoError(t, p.AddTask(NewTask(1, "A", 2, 20)))
	require.NoError(t, p.AddTask(NewTask(2, "B", 3, 30)))
	assert.Equal(t, 50.0, p.BaselineCost())

	// Last write wins, original position kept.
	require.NoError(t, p.AddTask(NewTask(1, "A2", 2, 5)))
	assert.Equal(t, 35.0, p.BaselineCost())
	assert.Equal(t, []int{1, 2}, p.TaskIDs())
	task, ok := p.Task(1)
	require.True(t, ok)
	assert.Equal(t, "A2", task.Name)
}

func TestProject_RejectsNilEntities(t *testing.T) {
	p := NewProject("p")
	assert.ErrorIs(t, p.AddTask(nil), ErrInvalidEntity)
	assert.ErrorIs(t, p.AddResource(nil), ErrInvalidEntity)
}

func TestProject_ResourcesOverwriteAndOverride(t *testing.T) {
	p := newTestProject(t, []*Resource{NewResource(1, "Dev", 10), NewResource(2, "QA", 20)})
	require.NoError(t, p.AddResource(NewResource(1, "Dev Sr", 30)))
	assert.Equal(t, 2, p.ResourceCount())
	assert.Equal(t, "Dev Sr", p.Resources()[0].Name)

	require.NoError(t, p.OverrideCost(2, 45))
	r, _ := p.Resource(2)
	assert.Equal(t, 45.0, r.CostPerHour)

	assert.ErrorIs(t, p.OverrideCost(9, 10), ErrUnknownResource)
}

func TestFindNextEligibleTask_ResourceScoping(t *testing.T) {
	// Two resources, one task scoped to each.
	p := newTestProject(t,
		[]*Resource{NewResource(1, "Dev", 10), NewResource(2, "QA", 10)},
		NewTask(10, "Code", 2, 0).WithRequiredResource(1),
		NewTask(20, "Test", 2, 0).WithRequiredResource(2),
	)

	forDev := p.FindNextEligibleTask(RefTo(1))
	require.NotNil(t, forDev)
	assert.Equal(t, 10, forDev.ID)

	forQA := p.FindNextEligibleTask(RefTo(2))
	require.NotNil(t, forQA)
	assert.Equal(t, 20, forQA.ID)

	assert.Nil(t, p.FindNextEligibleTask(RefTo(3)))
	assert.Equal(t, 10, p.FindNextEligibleTask(AnyResource).ID)
}

func TestFindNextEligibleTask_UnscopedClaimableByAny(t *testing.T) {
	p := newTestProject(t,
		[]*Resource{NewResource(1, "Dev", 10), NewResource(2, "QA", 10)},
		NewTask(10, "Shared", 2, 0),
	)
	for _, id := range []int{1, 2} {
		task := p.FindNextEligibleTask(RefTo(id))
		require.NotNil(t, task)
		assert.Equal(t, 10, task.ID)
	}
}

func TestFindNextEligibleTask_DependencyGating(t *testing.T) {
	dev := NewResource(1, "Dev", 10)
	a := NewTask(1, "A", 1, 0)
	b := NewTask(2, "B", 1, 0, 1)
	c := NewTask(3, "C", 1, 0, 2)
	p := newTestProject(t, []*Resource{dev}, a, b, c)

	assert.Same(t, a, p.FindNextEligibleTask(AnyResource))
	require.NoError(t, a.Claim(dev))
	assert.Nil(t, p.FindNextEligibleTask(AnyResource), "B waits for A, A is assigned")
	assert.Equal(t, StatusTodo, b.Status())
	assert.Equal(t, StatusTodo, c.Status())

	a.Work(1)
	assert.Same(t, b, p.FindNextEligibleTask(AnyResource))
	assert.False(t, p.IsEligible(c, AnyResource))
}

func TestFindNextEligibleTask_UnknownDependencyNeverSatisfied(t *testing.T) {
	p := newTestProject(t, nil, NewTask(1, "A", 1, 0, 99))
	assert.Nil(t, p.FindNextEligibleTask(AnyResource))
}

func TestProject_ResetState(t *testing.T) {
	dev := NewResource(1, "Dev", 10)
	a := NewTask(1, "A", 1, 10)
	b := NewTask(2, "B", 2, 10)
	p := newTestProject(t, []*Resource{dev}, a, b)

	a.Complete()
	require.NoError(t, b.Claim(dev))
	b.Work(0.5)
	assert.Equal(t, 1, p.DoneCount())

	p.ResetState()
	for _, task := range p.Tasks() {
		assert.Equal(t, StatusTodo, task.Status())
		assert.Equal(t, 0.0, task.Progress())
		assert.Equal(t, 0.0, task.ActualDuration())
		assert.Nil(t, task.AssignedResource())
	}
	assert.Equal(t, 1, p.ResourceCount())
	assert.False(t, p.AllDone())
}

func TestProject_AllDone(t *testing.T) {
	assert.True(t, NewProject("empty").AllDone())

	a := NewTask(1, "A", 0, 0)
	p := newTestProject(t, nil, a)
	assert.False(t, p.AllDone())
	a.Complete()
	assert.True(t, p.AllDone())
}

func TestProject_Validate(t *testing.T) {
	t.Run("valid chain", func(t *testing.T) {
		p := newTestProject(t, nil, NewTask(1, "A", 1, 0), NewTask(2, "B", 1, 0, 1))
		assert.NoError(t, p.Validate())
	})

	t.Run("unknown dependency", func(t *testing.T) {
		p := newTestProject(t, nil, NewTask(1, "A", 1, 0, 42))
		err := p.Validate()
		assert.ErrorIs(t, err, ErrInvalidPlan)
		assert.ErrorContains(t, err, "unknown task 42")
	})

	t.Run("cycle", func(t *testing.T) {
		p := newTestProject(t, nil, NewTask(1, "A", 1, 0, 2), NewTask(2, "B", 1, 0, 1))
		err := p.Validate()
		assert.ErrorIs(t, err, ErrInvalidPlan)
		assert.ErrorContains(t, err, "cycle detected")
	})

	t.Run("self dependency", func(t *testing.T) {
		p := newTestProject(t, nil, NewTask(1, "A", 1, 0, 1))
		assert.ErrorIs(t, p.Validate(), ErrInvalidPlan)
	})
}
