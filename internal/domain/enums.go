package domain

// EntryStatus is the lifecycle tag on a ledger entry.
type EntryStatus string

const (
	// StatusStarted marks an entry that is still running.
	StatusStarted EntryStatus = "Iniciado"
	// StatusFinished marks an entry closed by the operator.
	StatusFinished EntryStatus = "Finalizado"
	// StatusAutoClosed marks an entry force-closed at day rollover.
	StatusAutoClosed EntryStatus = "Cerrado Automático"
)

// SentinelActivityName is the end-of-shift activity. Selecting it closes
// the working day instead of opening a new ongoing entry.
const SentinelActivityName = "Salida"

// BreakActivityNames are excluded from effective-time totals on the
// supervisor dashboard.
var BreakActivityNames = []string{"Break Salida", "Regreso Break"}

// Well-known role names seeded on init.
const (
	RoleAdmin      = "Administrador"
	RoleSupervisor = "Supervisor"
	RoleAsesor     = "Asesor"
)
