package calculator

// calculator 的接口定义

type Calculator interface {
	// 获取CalcHub
	GetCalcHub() *CalcHub

	// 推进一个时间步
	Step() error

	// 固定步数运行，每 every 步向观察者推送一次快照
	Run(steps, every int, observers ...Observer) error

	// 运行直到透射概率不再增加
	RunTransmission(ts TransmissionSettings) (Transmission, error)

	// 当前波函数的拷贝
	Psi() []complex128

	Norm() float64

	State() State
}

// Snapshot is a copy of the state after Step steps. Observers must treat Psi
// as read-only; one copy is shared by every observer of the same step.
type Snapshot struct {
	Step int
	Time float64
	Psi  []complex128
}

type Observer interface {
	Observe(s Snapshot)
}
