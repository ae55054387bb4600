package parameter

// Fitness catalog default weights (§4.9)
const (
	FitnessWeightHealth  = 1.0
	FitnessWeightDamage  = 0.01
	FitnessWeightKills   = 5.0
	FitnessWeightTime    = 0.002
	FitnessWeightSalvage = 0.05
	FitnessWeightExplore = 0.02
)

// Fitness normalization bounds
const (
	FitnessHealthMaxDefault   = ShipHealthMax
	FitnessDamageMaxDefault   = 1000.0
	FitnessSalvageMaxDefault  = 500.0
	FitnessExploreGridDivisor = 20.0 // world units per visit-grid cell
)

// Evaluator
const (
	// EvalSeedsDefault is matches played per genome per generation
	EvalSeedsDefault = 4

	// EvalHoFMatchRate is the fraction of a genome's matches played against HoF champions
	EvalHoFMatchRate = 0.25

	// EvalTournamentK bounds peer sampling: each peer match draws one random
	// current-population opponent, retrying up to 4*K times to avoid the
	// subject itself; it does not set how many peers are played
	EvalTournamentK = 2

	// EvalAlwaysIncludeNaiveBaseline plays one match per genome against the Naive FSM
	EvalAlwaysIncludeNaiveBaseline = true

	// EvalEloWeight (lambda) blends Elo-normalized fitness into the final score;
	// 0 disables blending entirely
	EvalEloWeight = 0.0

	// EvalWorkersDefault is the default worker-pool size (cores-1 is resolved at runtime)
	EvalWorkersDefault = 0

	// EvalConsecutiveFailureThreshold pauses training after this many consecutive match failures
	EvalConsecutiveFailureThreshold = 10
)

// Persistence
const (
	// SnapshotIntervalDefault is the default number of generations between
	// full population snapshots to disk
	SnapshotIntervalDefault = 10
)

// Tournament / Elo
const (
	// EloInitialRating seeds a champion's rating on first appearance
	EloInitialRating = 1500.0

	// EloKFactorDefault controls rating update magnitude
	EloKFactorDefault = 24.0

	// EloRoundsDefault is matches played per ordered pair in a round-robin
	EloRoundsDefault = 1
)

// Remote controller transport
const (
	// RemoteRequestTimeoutMillis bounds a single inference round-trip
	RemoteRequestTimeoutMillis = 2000

	// RemoteRequestMaxRetries bounds retry attempts before the match fails
	RemoteRequestMaxRetries = 2

	// RemotePingIntervalMillis is the websocket liveness ping cadence
	RemotePingIntervalMillis = 15000
)
