package sm2

// AgainEasePenalty is subtracted from the ease factor on an "again" rating.
const AgainEasePenalty = 0.2

// HardEasePenalty is subtracted from the ease factor on a "hard" rating.
const HardEasePenalty = 0.15

// HardIntervalFactor scales the interval on a "hard" rating.
const HardIntervalFactor = 1.2

// EasyEaseBonus is added to the ease factor on an "easy" rating, before
// the interval is computed from it.
const EasyEaseBonus = 0.15

// EasyIntervalFactor is the extra interval multiplier on an "easy" rating,
// applied on top of the already-raised ease factor.
const EasyIntervalFactor = 1.3
