package derive

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// sanitize maps NaN/Inf to 0 so formatting never renders garbage.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// CompactNumber renders a magnitude with K/M suffixes:
// >= 1,000,000 -> "1.2M", >= 1,000 -> "3.4K", else a grouped integer.
func CompactNumber(v float64) string {
	v = sanitize(v)
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return GroupedInt(int64(math.Round(v)))
	}
}

// GroupedInt renders an integer with thousands separators.
func GroupedInt(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Currency renders a KRW amount with zero fraction digits.
func Currency(v int64) string {
	return "₩" + GroupedInt(v)
}

// Percent renders a percentage with one fraction digit.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", sanitize(v))
}

// RelativeTime renders how long ago ts was relative to now, in Korean units.
// Thresholds: 60 minutes to hours, 24 hours to days, 7 days to weeks,
// 30 days to months. Sub-minute and future timestamps render as "방금 전".
func RelativeTime(now, ts time.Time) string {
	d := now.Sub(ts)
	if d < time.Minute {
		return "방금 전"
	}
	minutes := int(d.Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%d분 전", minutes)
	}
	hours := int(d.Hours())
	if hours < 24 {
		return fmt.Sprintf("%d시간 전", hours)
	}
	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%d일 전", days)
	}
	if days < 30 {
		return fmt.Sprintf("%d주 전", days/7)
	}
	return fmt.Sprintf("%d개월 전", days/30)
}

// Duration renders a second count as "H시간 M분", "M분", or "0분".
func Duration(seconds int64) string {
	if seconds <= 0 {
		return "0분"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%d시간 %d분", h, m)
	}
	return fmt.Sprintf("%d분", m)
}
