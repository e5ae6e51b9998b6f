package sat

// Decay factors of the solver's moving averages. The fast glue average
// reacts within tens of conflicts while the slow glue and backjump averages
// track the whole run.
const (
	fastGlueDecay = 0.97
	slowGlueDecay = 0.9999
	jumpAvgDecay  = 0.9999
)

// EMA is an exponential moving average.
type EMA struct {
	decay float64
	value float64
	init  bool
}

func NewEMA(decay float64) EMA {
	return EMA{decay: decay}
}

func (ema *EMA) Add(x float64) {
	if !ema.init {
		ema.init = true
		ema.value = x
	} else {
		ema.value = ema.decay*ema.value + x*(1-ema.decay)
	}
}

func (ema *EMA) Val() float64 {
	return ema.value
}
