package config

import "time"

type CheckoutConfig struct {
	// RewardThresholdCents is the post-discount order total, in minor
	// currency units, at which a reward coupon is issued to the buyer.
	RewardThresholdCents int64         `yaml:"reward_threshold_cents"`
	RewardPercentage     float64       `yaml:"reward_percentage"`
	RewardValidity       time.Duration `yaml:"reward_validity"`
	RewardCodePrefix     string        `yaml:"reward_code_prefix"`
}

func loadCheckoutConfig() *CheckoutConfig {
	return &CheckoutConfig{
		RewardThresholdCents: getEnvAsInt64("CHECKOUT_REWARD_THRESHOLD_CENTS", 20000),
		RewardPercentage:     getEnvAsFloat64("CHECKOUT_REWARD_PERCENTAGE", 10),
		RewardValidity:       getEnvAsDuration("CHECKOUT_REWARD_VALIDITY", 30*24*time.Hour),
		RewardCodePrefix:     getEnv("CHECKOUT_REWARD_CODE_PREFIX", "GIFT"),
	}
}
