package model

// Simulation parameters. Units are atomic units (ħ = m = 1) and every
// length is a physical coordinate; conversion to grid indices happens in
// package grid.

const (
	Mode1D = "1d" // tunneling through a finite barrier
	Mode2D = "2d" // double slit
)

type Params struct {
	Mode   string    `json:"mode"`
	Grid   GridCfg   `json:"grid"`
	Grid2D GridCfg   `json:"grid2d"`
	Packet PacketCfg `json:"packet"`
	Well   WellCfg   `json:"well"`
	Plane  PlaneCfg  `json:"plane"`
	Slit   SlitCfg   `json:"slit"`
	Run    RunCfg    `json:"run"`
	Run2D  RunCfg    `json:"run2d"`
	Solver SolverCfg `json:"solver"`
	Sweep  SweepCfg  `json:"sweep"`
	Server ServerCfg `json:"server"`
	Log    LogCfg    `json:"log"`
}

// 网格，一维与二维各一份
type GridCfg struct {
	Length float64 `json:"length"` // domain length L
	Points int     `json:"points"` // points per axis N
}

// 一维高斯波包
type PacketCfg struct {
	Center     float64 `json:"center"`     // x0
	Width      float64 `json:"width"`      // sigma
	Wavenumber float64 `json:"wavenumber"` // k, overridden per energy during a sweep
}

// 一维势垒
type WellCfg struct {
	Start  float64 `json:"start"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"` // V0
}

// 二维平面波 exp(-x(1+ik))
type PlaneCfg struct {
	Wavenumber float64 `json:"wavenumber"`
}

// 二维双缝
type SlitCfg struct {
	BarrierX   float64 `json:"barrier_x"`
	Thickness  float64 `json:"thickness"`
	Width      float64 `json:"width"`      // opening width
	Separation float64 `json:"separation"` // centre to centre
	Center     float64 `json:"center"`     // y of the midpoint between the openings
	Height     float64 `json:"height"`     // wall potential
	ScreenX    float64 `json:"screen_x"`   // cross-section accumulated for the pattern
}

// 动画运行参数，一维与二维各一份
type RunCfg struct {
	TimeStep      float64 `json:"time_step"`
	Steps         int     `json:"steps"`
	SnapshotEvery int     `json:"snapshot_every"`
	Workers       int     `json:"workers"` // banded product workers, 1 = serial
}

type SolverCfg struct {
	Tolerance     float64 `json:"tolerance"`
	MaxIterations int     `json:"max_iterations"`
}

// 透射系数扫描
type SweepCfg struct {
	EnergyMin float64 `json:"energy_min"`
	EnergyMax float64 `json:"energy_max"`
	Count     int     `json:"count"`
	Threshold float64 `json:"threshold"`
	MaxSteps  int     `json:"max_steps"`
	Workers   int     `json:"workers"`
}

type ServerCfg struct {
	Addr    string `json:"addr"`
	History int    `json:"history"` // frames kept for replay
}

type LogCfg struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 请求/响应类型
const (
	MsgEnv     = "env"
	MsgStart   = "start"
	MsgStop    = "stop"
	MsgHistory = "history"

	MsgEnvSet   = "envSet"
	MsgStarted  = "started"
	MsgFrame    = "frame"
	MsgStopped  = "stopped"
	MsgFinished = "finished"
	MsgError    = "error"
)

// Frame is one pushed snapshot. Density is quantized and run-length encoded
// by the server before it is put on the wire.
type Frame struct {
	Step    int      `json:"step"`
	Time    float64  `json:"time"`
	Norm    float64  `json:"norm"`
	Rows    int      `json:"rows"`
	Cols    int      `json:"cols"`
	Density Encoding `json:"density"`
}

type Encoding struct {
	Max  float64 `json:"max"`
	Data []byte  `json:"data"` // (level, run) pairs
}
