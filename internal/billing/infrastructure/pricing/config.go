package pricing

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	billing "meterbill/internal/billing/domain"
)

const (
	modeFlat        = "flat"
	modeDayNight    = "day_night"
	modeWeekendFree = "weekend_free"
)

// Config defines a tariff plan file.
type Config struct {
	Currency string       `yaml:"currency"`
	Plans    []PlanConfig `yaml:"plans"`
}

// PlanConfig defines one tariff plan. Rates are in currency units per kWh,
// the discount in percent, window boundaries as "HH:MM" local clock times.
type PlanConfig struct {
	Name               string       `yaml:"name"`
	Mode               string       `yaml:"mode"`
	ImportRate         float64      `yaml:"import_rate"`
	DayRate            float64      `yaml:"day_rate"`
	PeakRate           float64      `yaml:"peak_rate"`
	NightRate          float64      `yaml:"night_rate"`
	DiscountPct        float64      `yaml:"discount_pct"`
	ExportRate         float64      `yaml:"export_rate"`
	StandingChargeYear float64      `yaml:"standing_charge_year"`
	PeakWindow         WindowConfig `yaml:"peak_window"`
	NightWindow        WindowConfig `yaml:"night_window"`
	FreeWindow         WindowConfig `yaml:"free_window"`
	FreeDay            string       `yaml:"free_day"`
}

// WindowConfig is a (start, end] clock window.
type WindowConfig struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// LoadConfig reads and validates a plan file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("pricing: parse plan file: %w", err)
	}
	if cfg.Currency == "" {
		cfg.Currency = "EUR"
	}
	if len(cfg.Plans) == 0 {
		return Config{}, errors.New("pricing: plan file defines no plans")
	}
	return cfg, nil
}

// BuildPlans converts the config into domain plans.
func (c Config) BuildPlans() ([]billing.PricePlan, error) {
	plans := make([]billing.PricePlan, 0, len(c.Plans))
	for _, pc := range c.Plans {
		plan, err := pc.build()
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func (pc PlanConfig) build() (billing.PricePlan, error) {
	if pc.Name == "" {
		return nil, errors.New("pricing: plan without a name")
	}
	if pc.DiscountPct < 0 || pc.DiscountPct >= 100 {
		return nil, fmt.Errorf("pricing: plan %q: discount %.2f%% out of range", pc.Name, pc.DiscountPct)
	}
	if pc.ExportRate < 0 || pc.StandingChargeYear < 0 {
		return nil, fmt.Errorf("pricing: plan %q: negative rate", pc.Name)
	}
	discount := pc.DiscountPct / 100

	switch pc.Mode {
	case modeFlat:
		if pc.ImportRate <= 0 {
			return nil, fmt.Errorf("pricing: plan %q: import_rate required", pc.Name)
		}
		return billing.FlatRatePlan{
			PlanName:             pc.Name,
			ImportRate:           pc.ImportRate,
			Discount:             discount,
			ExportRate:           pc.ExportRate,
			AnnualStandingCharge: pc.StandingChargeYear,
		}, nil

	case modeDayNight:
		peak, night, err := pc.bandedWindows()
		if err != nil {
			return nil, err
		}
		if pc.DayRate <= 0 || pc.PeakRate <= 0 || pc.NightRate <= 0 {
			return nil, fmt.Errorf("pricing: plan %q: day/peak/night rates required", pc.Name)
		}
		return billing.DayNightPlan{
			PlanName:             pc.Name,
			DayRate:              pc.DayRate,
			PeakRate:             pc.PeakRate,
			NightRate:            pc.NightRate,
			Peak:                 peak,
			Night:                night,
			Discount:             discount,
			ExportRate:           pc.ExportRate,
			AnnualStandingCharge: pc.StandingChargeYear,
		}, nil

	case modeWeekendFree:
		peak, night, err := pc.bandedWindows()
		if err != nil {
			return nil, err
		}
		if pc.DayRate <= 0 || pc.PeakRate <= 0 || pc.NightRate <= 0 {
			return nil, fmt.Errorf("pricing: plan %q: day/peak/night rates required", pc.Name)
		}
		free, err := parseWindow(pc.FreeWindow, billing.ClockBand{Start: 9 * 60, End: 18 * 60})
		if err != nil {
			return nil, fmt.Errorf("pricing: plan %q: free window: %w", pc.Name, err)
		}
		freeDay, err := parseWeekday(pc.FreeDay)
		if err != nil {
			return nil, fmt.Errorf("pricing: plan %q: %w", pc.Name, err)
		}
		return billing.WeekendFreePlan{
			PlanName:             pc.Name,
			DayRate:              pc.DayRate,
			PeakRate:             pc.PeakRate,
			NightRate:            pc.NightRate,
			Peak:                 peak,
			Night:                night,
			Free:                 free,
			FreeDay:              freeDay,
			Discount:             discount,
			ExportRate:           pc.ExportRate,
			AnnualStandingCharge: pc.StandingChargeYear,
		}, nil

	default:
		return nil, fmt.Errorf("pricing: plan %q: unknown mode %q", pc.Name, pc.Mode)
	}
}

func (pc PlanConfig) bandedWindows() (billing.ClockBand, billing.ClockBand, error) {
	peak, err := parseWindow(pc.PeakWindow, billing.ClockBand{Start: 17 * 60, End: 19 * 60})
	if err != nil {
		return billing.ClockBand{}, billing.ClockBand{}, fmt.Errorf("pricing: plan %q: peak window: %w", pc.Name, err)
	}
	night, err := parseWindow(pc.NightWindow, billing.ClockBand{Start: 23 * 60, End: 8 * 60})
	if err != nil {
		return billing.ClockBand{}, billing.ClockBand{}, fmt.Errorf("pricing: plan %q: night window: %w", pc.Name, err)
	}
	return peak, night, nil
}

func parseWindow(w WindowConfig, fallback billing.ClockBand) (billing.ClockBand, error) {
	if w.Start == "" && w.End == "" {
		return fallback, nil
	}
	start, err := parseClock(w.Start)
	if err != nil {
		return billing.ClockBand{}, err
	}
	end, err := parseClock(w.End)
	if err != nil {
		return billing.ClockBand{}, err
	}
	return billing.ClockBand{Start: start, End: end}, nil
}

func parseClock(value string) (int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("bad clock time %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("bad clock time %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("bad clock time %q", value)
	}
	return hour*60 + minute, nil
}

func parseWeekday(value string) (time.Weekday, error) {
	if value == "" {
		return time.Sunday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(value, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", value)
}
