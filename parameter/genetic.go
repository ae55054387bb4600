package parameter

// Genetic Algorithm - Engine Configuration
const (
	// GAPoolSize is the number of candidates in each population
	GAPoolSize = 150

	// GAEliteCount is preserved best performers per generation (per species)
	GAEliteCount = 1

	// GAPerturbationRate is probability of mutation per offspring (0.0-1.0)
	GAPerturbationRate = 0.8

	// GAPerturbationStrength controls mutation intensity (0.0-1.0)
	GAPerturbationStrength = 0.15

	// GAMaxIterations caps synchronous evolution runs
	GAMaxIterations = 1000

	// GAParallelism for batch evaluation
	GAParallelism = 4

	// GATournamentSize for intra-species parent selection
	GATournamentSize = 3

	// GACrossoverMixProbability is the chance a matching gene is taken from
	// the first parent rather than the second
	GACrossoverMixProbability = 0.5
)

// NEAT - Compatibility distance
const (
	// NEATCompatExcessCoefficient is c1 in the compatibility distance formula
	NEATCompatExcessCoefficient = 1.0

	// NEATCompatDisjointCoefficient is c2
	NEATCompatDisjointCoefficient = 1.0

	// NEATCompatWeightCoefficient is c3
	NEATCompatWeightCoefficient = 0.4

	// NEATCompatSmallGenomeThreshold is N below which E/N and D/N use N=1
	NEATCompatSmallGenomeThreshold = 20

	// NEATSpeciesThresholdInitial is the starting compatibility threshold
	NEATSpeciesThresholdInitial = 3.0

	// NEATSpeciesThresholdStep adjusts the threshold toward the target count
	NEATSpeciesThresholdStep = 0.3

	// NEATSpeciesThresholdMin is the floor for dynamic threshold adjustment
	NEATSpeciesThresholdMin = 0.3

	// NEATTargetSpeciesCount steers the dynamic threshold
	NEATTargetSpeciesCount = 12
)

// NEAT - Speciation & reproduction
const (
	// NEATStagnationWindow is generations without improvement before culling
	NEATStagnationWindow = 15

	// NEATElitismThreshold is the minimum species size to copy its champion unchanged
	NEATElitismThreshold = 5

	// NEATCrossoverRate is the probability reproduction uses crossover vs
	// asexual mutation of a single parent
	NEATCrossoverRate = 0.75

	// NEATInterspeciesMatingRate is the chance a crossover parent is drawn
	// from a different species than the first parent
	NEATInterspeciesMatingRate = 0.001

	// NEATDisabledGeneInheritRate is the chance a gene disabled in either
	// parent stays disabled in the child
	NEATDisabledGeneInheritRate = 0.75
)

// NEAT - Mutation probabilities (independent per offspring)
const (
	// NEATMutateAddNodeRate is the probability of splitting a connection
	NEATMutateAddNodeRate = 0.03

	// NEATMutateAddConnectionRate is the probability of adding a new edge
	NEATMutateAddConnectionRate = 0.05

	// NEATMutateAddConnectionAttempts bounds random (u,v) retries
	NEATMutateAddConnectionAttempts = 20

	// NEATMutateWeightPerturbRate is the per-connection chance of Gaussian perturbation
	NEATMutateWeightPerturbRate = 0.9

	// NEATMutateWeightReplaceRate is the per-connection chance of a fresh weight
	// (evaluated only when perturbation does not apply)
	NEATMutateWeightReplaceRate = 0.1

	// NEATMutateToggleEnableRate is the per-connection chance of flipping enabled
	NEATMutateToggleEnableRate = 0.01

	// NEATWeightPerturbStdDev is the Gaussian std-dev applied on perturbation
	NEATWeightPerturbStdDev = 0.5

	// NEATWeightRange bounds freshly assigned weights to [-range, range]
	NEATWeightRange = 2.0
)

// NEAT - Population bookkeeping
const (
	// NEATHallOfFameCapacity bounds the historical champion retention queue
	NEATHallOfFameCapacity = 20

	// NEATInnovationResetPerGeneration clears the (from,to)->innovation map
	// at the start of every generation; ids stay unique within one generation
	NEATInnovationResetPerGeneration = true
)
