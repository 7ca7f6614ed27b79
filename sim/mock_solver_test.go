package sim

import "github.com/stretchr/testify/mock"

// mockSolver 可设置期望的求解器
type mockSolver struct {
	mock.Mock
	onSolve func()
}

func (m *mockSolver) Solve() error {
	if m.onSolve != nil {
		m.onSolve()
	}
	args := m.Called()
	return args.Error(0)
}
