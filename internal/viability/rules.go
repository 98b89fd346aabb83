package viability

import (
	"fmt"

	"goverdict/domain/verdict"
)

// Red flag titles emitted by the rule pipeline
const (
	FlagNoPurchaseIntent       = "No Purchase Intent"
	FlagSaturatedMarket        = "Saturated Market"
	FlagCompetitiveMarket      = "Competitive Market"
	FlagUnrealisticPenetration = "Unrealistic Market Penetration"
	FlagAmbitiousPenetration   = "Ambitious Market Penetration"
	FlagMarketGoalUnlikely     = "Market Goal Unlikely"
	FlagMarketGoalDifficult    = "Market Goal Difficult"
)

// RuleState is the value threaded through the rule pipeline. Rules never
// mutate the state they receive; they return a new one.
type RuleState struct {
	Score       float64
	ForcedTier  verdict.Tier
	RedFlags    []verdict.RedFlag
	Adjustments []verdict.Adjustment
}

// Snapshot is the read-only input the rules inspect
type Snapshot struct {
	Pain        *verdict.PainScoreInput
	Competition *verdict.CompetitionScoreInput
	Market      *verdict.MarketScoreInput
}

// Rule is one override policy. Applying a rule twice to the same snapshot
// yields the same state as applying it once.
type Rule interface {
	Name() string
	Apply(state RuleState, snap Snapshot) RuleState
}

// DefaultRules returns the production rule order: kill switch, saturation
// cap, then market reality warnings.
func DefaultRules(cfg Config) []Rule {
	return []Rule{
		&WTPKillSwitch{cfg: cfg.WTP},
		&SaturationCap{cfg: cfg.Saturation},
		&MarketRealityCheck{cfg: cfg.MarketReality},
	}
}

// RunRules applies rules in order, each on the output of the previous one
func RunRules(rules []Rule, initial RuleState, snap Snapshot) RuleState {
	state := initial.clone()
	for _, rule := range rules {
		state = rule.Apply(state, snap)
		state.Score = clampScore(state.Score)
	}
	return state
}

func (s RuleState) clone() RuleState {
	out := RuleState{Score: s.Score, ForcedTier: s.ForcedTier}
	out.RedFlags = append([]verdict.RedFlag(nil), s.RedFlags...)
	out.Adjustments = append([]verdict.Adjustment(nil), s.Adjustments...)
	return out
}

func (s RuleState) hasFlag(title string) bool {
	for _, f := range s.RedFlags {
		if f.Title == title {
			return true
		}
	}
	return false
}

// withFlag appends a flag unless an identical one is already present
func (s RuleState) withFlag(flag verdict.RedFlag) RuleState {
	for _, f := range s.RedFlags {
		if f == flag {
			return s
		}
	}
	s.RedFlags = append(s.RedFlags, flag)
	return s
}

// withCap lowers the score to limit. A cap never raises a score, so stacked
// caps keep the tightest one instead of compounding.
func (s RuleState) withCap(rule string, limit float64, forced verdict.Tier, reason string) RuleState {
	before := s.Score
	after := s.Score
	if after > limit {
		after = limit
	}

	forceChanged := forced != "" && s.ForcedTier != forced
	if after == before && !forceChanged {
		return s
	}

	s.Score = after
	if forced != "" {
		s.ForcedTier = forced
	}
	s.Adjustments = append(s.Adjustments, verdict.Adjustment{
		Rule:   rule,
		Before: before,
		After:  after,
		Forced: forced,
		Reason: reason,
	})
	return s
}

// ============================================================================
// WTP kill switch
// ============================================================================

// WTPKillSwitch caps ideas nobody has offered to pay for
type WTPKillSwitch struct {
	cfg WTPConfig
}

func (r *WTPKillSwitch) Name() string { return "wtp_kill_switch" }

func (r *WTPKillSwitch) Apply(state RuleState, snap Snapshot) RuleState {
	pain := snap.Pain
	if pain == nil || pain.WillingnessToPayCount != 0 || pain.TotalSignals <= 0 {
		return state
	}
	state = state.clone()

	if pain.TotalSignals < r.cfg.TrustedSignalCount {
		reason := fmt.Sprintf("None of the %d pain signals mention willingness to pay. Score capped at %.1f and verdict set to weak.",
			pain.TotalSignals, r.cfg.HardCap)
		state = state.withCap(r.Name(), r.cfg.HardCap, verdict.TierWeak, reason)
		return state.withFlag(verdict.RedFlag{
			Severity: verdict.SeverityHigh,
			Title:    FlagNoPurchaseIntent,
			Message:  reason,
		})
	}

	// Large samples earn more trust: cap softly and leave the verdict alone.
	reason := fmt.Sprintf("None of the %d pain signals mention willingness to pay. Score capped at %.1f.",
		pain.TotalSignals, r.cfg.SoftCap)
	state = state.withCap(r.Name(), r.cfg.SoftCap, "", reason)
	return state.withFlag(verdict.RedFlag{
		Severity: verdict.SeverityHigh,
		Title:    FlagNoPurchaseIntent,
		Message:  reason,
	})
}

// ============================================================================
// Competition saturation cap
// ============================================================================

// SaturationCap limits scores in crowded markets
type SaturationCap struct {
	cfg SaturationConfig
}

func (r *SaturationCap) Name() string { return "competition_saturation_cap" }

func (r *SaturationCap) Apply(state RuleState, snap Snapshot) RuleState {
	comp := snap.Competition
	if comp == nil {
		return state
	}

	mature := comp.MarketMaturity == verdict.MaturityMature || comp.MarketMaturity == verdict.MaturitySaturated
	saturated := mature || comp.CompetitorCount >= r.cfg.CompetitorThreshold
	if !saturated {
		return state
	}
	state = state.clone()

	market := "crowded"
	if comp.MarketMaturity != "" {
		market = string(comp.MarketMaturity)
	}

	if comp.HasFreeAlternatives {
		reason := fmt.Sprintf("Free alternatives exist in a %s market with %d competitors. Score capped at %.1f.",
			market, comp.CompetitorCount, r.cfg.SaturatedCap)
		state = state.withCap(r.Name(), r.cfg.SaturatedCap, "", reason)
		return state.withFlag(verdict.RedFlag{
			Severity: verdict.SeverityHigh,
			Title:    FlagSaturatedMarket,
			Message:  reason,
		})
	}

	reason := fmt.Sprintf("%d competitors in a %s market. Score capped at %.1f.",
		comp.CompetitorCount, market, r.cfg.CompetitiveCap)
	state = state.withCap(r.Name(), r.cfg.CompetitiveCap, "", reason)
	return state.withFlag(verdict.RedFlag{
		Severity: verdict.SeverityMedium,
		Title:    FlagCompetitiveMarket,
		Message:  reason,
	})
}

// ============================================================================
// Market reality warnings
// ============================================================================

// MarketRealityCheck only adds flags; it never changes the score
type MarketRealityCheck struct {
	cfg MarketRealityConfig
}

func (r *MarketRealityCheck) Name() string { return "market_reality_check" }

func (r *MarketRealityCheck) Apply(state RuleState, snap Snapshot) RuleState {
	market := snap.Market
	if market == nil {
		return state
	}
	state = state.clone()

	switch {
	case market.PenetrationRequired > r.cfg.HighPenetration:
		state = state.withFlag(verdict.RedFlag{
			Severity: verdict.SeverityHigh,
			Title:    FlagUnrealisticPenetration,
			Message: fmt.Sprintf("Reaching revenue goals requires %.1f%% of the addressable market.",
				market.PenetrationRequired),
		})
	case market.PenetrationRequired > r.cfg.MediumPenetration:
		state = state.withFlag(verdict.RedFlag{
			Severity: verdict.SeverityMedium,
			Title:    FlagAmbitiousPenetration,
			Message: fmt.Sprintf("Reaching revenue goals requires %.1f%% of the addressable market.",
				market.PenetrationRequired),
		})
	}

	switch market.Achievability {
	case verdict.AchievabilityUnlikely:
		state = state.withFlag(verdict.RedFlag{
			Severity: verdict.SeverityHigh,
			Title:    FlagMarketGoalUnlikely,
			Message:  "Market sizing rates the revenue goal as unlikely to be achieved.",
		})
	case verdict.AchievabilityDifficult:
		if state.hasFlag(FlagUnrealisticPenetration) || state.hasFlag(FlagAmbitiousPenetration) {
			break
		}
		state = state.withFlag(verdict.RedFlag{
			Severity: verdict.SeverityMedium,
			Title:    FlagMarketGoalDifficult,
			Message:  "Market sizing rates the revenue goal as difficult to achieve.",
		})
	}

	return state
}
