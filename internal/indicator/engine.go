package indicator

import (
	"errors"
	"fmt"
	"strconv"

	"equity-navigator/internal/formula"
	"equity-navigator/internal/series"
)

// Engine computes a declared set of indicators over one bar series.
// It holds no per-ticker state, so one Engine can serve any number of
// tickers concurrently.
type Engine struct{}

// NewEngine creates an indicator engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Compute runs every configured indicator against the frame and returns
// the named overlays ("SMA_20", "MACD_SIGNAL", ...). A user formula that
// evaluates to no result is skipped and reported in skipped rather than
// failing the whole set; a structurally invalid config (unknown type)
// is an error.
func (e *Engine) Compute(f series.Frame, configs []Config) (overlays []Overlay, skipped []string, err error) {
	for _, cfg := range configs {
		switch cfg.Type {
		case "SMA":
			w := defaultWindow(cfg.Window, DefaultSMAWindow)
			overlays = append(overlays, Overlay{Name: "SMA_" + itoa(w), Series: SMA(f, w)})

		case "EMA":
			w := defaultWindow(cfg.Window, DefaultEMAWindow)
			overlays = append(overlays, Overlay{Name: "EMA_" + itoa(w), Series: EMA(f, w)})

		case "RSI":
			w := defaultWindow(cfg.Window, DefaultRSIWindow)
			overlays = append(overlays, Overlay{Name: "RSI_" + itoa(w), Series: RSI(f, w)})

		case "MACD":
			macd, signal := MACD(f)
			overlays = append(overlays,
				Overlay{Name: "MACD", Series: macd},
				Overlay{Name: "MACD_SIGNAL", Series: signal},
			)

		case "BOLLINGER":
			w := defaultWindow(cfg.Window, DefaultBandWindow)
			middle, upper, lower := Bollinger(f, w, cfg.Mult)
			overlays = append(overlays,
				Overlay{Name: "BB_MID_" + itoa(w), Series: middle},
				Overlay{Name: "BB_UP_" + itoa(w), Series: upper},
				Overlay{Name: "BB_LOW_" + itoa(w), Series: lower},
			)

		case "STOCH":
			kw := defaultWindow(cfg.Window, DefaultStochK)
			dw := defaultWindow(cfg.Smooth, DefaultStochD)
			k, d := Stochastic(f, kw, dw)
			overlays = append(overlays,
				Overlay{Name: "STOCH_K_" + itoa(kw), Series: k},
				Overlay{Name: "STOCH_D_" + itoa(kw) + "_" + itoa(dw), Series: d},
			)

		case "ATR":
			w := defaultWindow(cfg.Window, DefaultATRWindow)
			overlays = append(overlays, Overlay{Name: "ATR_" + itoa(w), Series: ATR(f, w)})

		case "VWAP":
			overlays = append(overlays, Overlay{Name: "VWAP", Series: VWAP(f)})

		case "ICHIMOKU":
			cloud := IchimokuCloud(f)
			overlays = append(overlays,
				Overlay{Name: "ICHIMOKU_TENKAN", Series: cloud.Tenkan},
				Overlay{Name: "ICHIMOKU_KIJUN", Series: cloud.Kijun},
				Overlay{Name: "ICHIMOKU_SENKOU_A", Series: cloud.SenkouA},
				Overlay{Name: "ICHIMOKU_SENKOU_B", Series: cloud.SenkouB},
				Overlay{Name: "ICHIMOKU_CHIKOU", Series: cloud.Chikou},
			)

		case "FORMULA":
			name := cfg.Name
			if name == "" {
				name = "USER"
			}
			result, ferr := formula.Evaluate(f, cfg.Formula)
			if ferr != nil {
				if errors.Is(ferr, formula.ErrNoResult) {
					skipped = append(skipped, name)
					continue
				}
				return nil, nil, ferr
			}
			overlays = append(overlays, Overlay{Name: name, Series: result})

		default:
			return nil, nil, fmt.Errorf("indicator: unknown type %q", cfg.Type)
		}
	}
	return overlays, skipped, nil
}

func defaultWindow(w, fallback int) int {
	if w <= 0 {
		return fallback
	}
	return w
}

func itoa(n int) string { return strconv.Itoa(n) }
