package testutil

// ThreeTaskPlan is a small HCL project: design, then build on the developer,
// then test on the tester. With unit efficiency and no noise it finishes at
// step 6 (the tester runs the test in the step the build completes) with an
// actual cost of 65, equal to its budget.
const ThreeTaskPlan = `
project "sample" {
  description = "three sequential tasks"
}

resource "dev" {
  cost_per_hour = 10
}

resource "qa" {
  cost_per_hour = 5
}

task "design" {
  duration = 2
  cost     = 20
}

task "build" {
  duration   = 4
  cost       = 40
  resource   = resource.dev
  depends_on = [task.design]
}

task "test" {
  duration   = 1
  cost       = 5
  resource   = resource.qa
  depends_on = [task.build]
}
`

// ThreeTaskPlanYAML describes the same project as ThreeTaskPlan.
const ThreeTaskPlanYAML = `
name: sample
resources:
  - {id: 1, name: dev, cost_per_hour: 10}
  - {id: 2, name: qa, cost_per_hour: 5}
tasks:
  - {id: 1, name: design, duration: 2, cost: 20}
  - {id: 2, name: build, duration: 4, cost: 40, resource: 1, depends_on: [1]}
  - {id: 3, name: test, duration: 1, cost: 5, resource: 2, depends_on: [2]}
`

// ExactExperiment runs ThreeTaskPlan (expected at plan.hcl) without noise
// and with unit efficiency, so every run follows the plan exactly.
const ExactExperiment = `
experiment "exact" {
  project = "plan.hcl"
  runs    = 3
  seed    = 1

  parameters {
    error_margin           = 0
    reassignment_frequency = 0
    max_steps              = 100
    efficiency_min         = 1
    efficiency_max         = 1
  }
}
`
