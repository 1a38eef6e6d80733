package timeline

import (
	"fmt"
	"time"
)

// Durations holds the three lead-time estimates, in minutes, used to lay
// out the logistics phases around an event.
type Durations struct {
	LoadingMin     int
	PreparationMin int
	TravelMin      int
}

// TotalLead returns loading + preparation + travel as a duration.
func (d Durations) TotalLead() time.Duration {
	return time.Duration(d.LoadingMin+d.PreparationMin+d.TravelMin) * time.Minute
}

func (d Durations) validate() error {
	if d.LoadingMin < 0 || d.PreparationMin < 0 || d.TravelMin < 0 {
		return fmt.Errorf("%w: loading=%d preparation=%d travel=%d",
			ErrInvalidDuration, d.LoadingMin, d.PreparationMin, d.TravelMin)
	}
	return nil
}

// LogisticsWindows is the derived layout of the phases surrounding an
// event: load up, drive out, (the event itself), drive back, unload.
type LogisticsWindows struct {
	Loading     Window
	Preparation Window
	TravelOut   Window
	TravelBack  Window
	Unloading   Window
}

// Span is the full reservation window, from the start of loading to the
// end of unloading. A vehicle booked for the event is held for this span.
func (lw LogisticsWindows) Span() Window {
	return Window{Start: lw.Loading.Start, End: lw.Unloading.End}
}

// LoadingWithPreparation merges the loading and preparation windows into
// the single window stored on the Loading phase.
func (lw LogisticsWindows) LoadingWithPreparation() Window {
	return Window{Start: lw.Loading.Start, End: lw.Preparation.End}
}

// DefaultLogisticsStart computes when logistics must begin for the crew
// to arrive exactly at eventStart: subtract the total lead time.
func DefaultLogisticsStart(eventStart time.Time, d Durations) time.Time {
	return eventStart.Add(-d.TotalLead())
}

// DeriveLogisticsWindows lays out the five windows sequentially from
// logisticsStart. The layout rule is strictly positional:
//
//	loading     = [logisticsStart, +loadingMin)
//	preparation = [loading.End, +preparationMin)
//	travelOut   = [preparation.End, eventStart)
//	travelBack  = [eventEnd, +travelMin)
//	unloading   = [travelBack.End, +loadingMin)
//
// TravelOut always ends exactly at eventStart. When logisticsStart came
// from DefaultLogisticsStart the outbound leg is exactly travelMin long;
// when the caller supplies an inconsistent anchor the windows are returned
// as-is and the conflict detector surfaces the damage. The deriver
// computes, it does not second-guess the caller.
func DeriveLogisticsWindows(eventStart, eventEnd time.Time, d Durations, logisticsStart time.Time) (LogisticsWindows, error) {
	if err := d.validate(); err != nil {
		return LogisticsWindows{}, err
	}
	if eventEnd.Before(eventStart) {
		return LogisticsWindows{}, fmt.Errorf("%w: start=%s end=%s",
			ErrInvalidEventWindow, eventStart.Format(time.RFC3339), eventEnd.Format(time.RFC3339))
	}

	loading := Window{
		Start: logisticsStart,
		End:   logisticsStart.Add(time.Duration(d.LoadingMin) * time.Minute),
	}
	preparation := Window{
		Start: loading.End,
		End:   loading.End.Add(time.Duration(d.PreparationMin) * time.Minute),
	}
	travelOut := Window{
		Start: preparation.End,
		End:   eventStart,
	}
	travelBack := Window{
		Start: eventEnd,
		End:   eventEnd.Add(time.Duration(d.TravelMin) * time.Minute),
	}
	unloading := Window{
		Start: travelBack.End,
		End:   travelBack.End.Add(time.Duration(d.LoadingMin) * time.Minute),
	}

	return LogisticsWindows{
		Loading:     loading,
		Preparation: preparation,
		TravelOut:   travelOut,
		TravelBack:  travelBack,
		Unloading:   unloading,
	}, nil
}
