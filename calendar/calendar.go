// Package calendar builds the month view shared by the web page and the CLI.
package calendar

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"groupcal/models"
)

// FreeTextOption is the name select value that switches to the free text field.
const FreeTextOption = "free_text"

// User facing messages.
const (
	MsgNoMembers        = "表示月の予定にメンバーがいません。"
	MsgSelectMember     = "検索するメンバーを1人以上選択してください。"
	MsgInvalidDuration  = "最小持続時間は1以上の数値を入力してください。"
	MsgNoCommonSlots    = "選択されたメンバーの共通の空き時間はありませんでした。"
	MsgFreeTextRequired = "氏名 (自由記述) を入力してください。"
	MsgNameRequired     = "氏名を選択してください。"
	MsgInputRequired    = "予定テキストまたは画像を1つ以上入力/選択してください。"
	MsgDeleteMissing    = "削除する日付またはメンバーが選択されていません。"
	MsgNoDeleteTargets  = "削除対象メンバーなし"
	MsgSubmitted        = "予定が登録されました！"
)

// DayHeaders are the grid column titles, Sunday first.
var DayHeaders = []string{"日", "月", "火", "水", "木", "金", "土"}

const colorCount = 8

// ColorAssigner hands out event-color-N classes in order of first appearance.
type ColorAssigner struct {
	classes map[string]string
	next    int
}

func NewColorAssigner() *ColorAssigner {
	return &ColorAssigner{classes: make(map[string]string)}
}

// Class returns the colour class of name, assigning the next one on first sight.
func (c *ColorAssigner) Class(name string) string {
	if cls, ok := c.classes[name]; ok {
		return cls
	}
	cls := fmt.Sprintf("event-color-%d", c.next%colorCount)
	c.classes[name] = cls
	c.next++
	return cls
}

// CellEvent is one line in a day cell.
type CellEvent struct {
	Name       string
	Start      string // "HH:MM"
	End        string // "HH:MM"
	ColorClass string
}

func (e CellEvent) Label() string {
	return fmt.Sprintf("%s-%s %s", e.Start, e.End, e.Name)
}

// Cell is a grid cell. Leading cells before the 1st are Empty.
type Cell struct {
	Empty   bool
	Day     int
	Date    string
	Events  []CellEvent
	Members []string
}

type Month struct {
	Year    int
	Month   int
	Title   string
	Headers []string
	Cells   []Cell
}

// BuildMonth lays out the month grid. Colour classes are assigned afresh on every call.
func BuildMonth(year, month int, events []models.Event) Month {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	byDate := make(map[string][]models.Event)
	for _, e := range events {
		byDate[e.EventDate] = append(byDate[e.EventDate], e)
	}

	m := Month{
		Year:    year,
		Month:   month,
		Title:   fmt.Sprintf("%d年 %d月", year, month),
		Headers: DayHeaders,
	}
	for i := 0; i < int(first.Weekday()); i++ {
		m.Cells = append(m.Cells, Cell{Empty: true})
	}

	colors := NewColorAssigner()
	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		dayEvents := append([]models.Event(nil), byDate[date]...)
		sort.SliceStable(dayEvents, func(i, j int) bool {
			return dayEvents[i].StartTime < dayEvents[j].StartTime
		})

		cell := Cell{Day: day, Date: date, Members: MembersOn(events, date)}
		for _, e := range dayEvents {
			cell.Events = append(cell.Events, CellEvent{
				Name:       e.Name,
				Start:      models.ShortTime(e.StartTime),
				End:        models.ShortTime(e.EndTime),
				ColorClass: colors.Class(e.Name),
			})
		}
		m.Cells = append(m.Cells, cell)
	}
	return m
}

// Members returns the sorted distinct names among events.
func Members(events []models.Event) []string {
	return distinctSorted(events, func(models.Event) bool { return true })
}

// MembersOn returns the sorted distinct names with events on date.
func MembersOn(events []models.Event, date string) []string {
	return distinctSorted(events, func(e models.Event) bool { return e.EventDate == date })
}

func distinctSorted(events []models.Event, keep func(models.Event) bool) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, e := range events {
		if keep(e) && !seen[e.Name] {
			seen[e.Name] = true
			names = append(names, e.Name)
		}
	}
	sort.Strings(names)
	return names
}

// FreeDay is one date of the free slot listing.
type FreeDay struct {
	Date  string
	Label string   // "6/2 (月):"
	Slots []string // "  09:00 - 10:00"
}

// FormatFreeSlots orders dates ascending and renders their labels. Dates without slots are dropped.
func FormatFreeSlots(slots models.FreeSlotsByDate) []FreeDay {
	dates := make([]string, 0, len(slots))
	for d, s := range slots {
		if len(s) > 0 {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)

	days := make([]FreeDay, 0, len(dates))
	for _, d := range dates {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		day := FreeDay{
			Date:  d,
			Label: fmt.Sprintf("%d/%d (%s):", int(t.Month()), t.Day(), DayHeaders[t.Weekday()]),
		}
		for _, s := range slots[d] {
			day.Slots = append(day.Slots, fmt.Sprintf("  %s - %s", s.Start, s.End))
		}
		days = append(days, day)
	}
	return days
}

// Shift moves year/month by delta months.
func Shift(year, month, delta int) (int, int) {
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), int(t.Month())
}

// ResolveName picks the submitted member name from the select or the free text field.
func ResolveName(selected, freeText string) (string, error) {
	if selected == FreeTextOption {
		name := strings.TrimSpace(freeText)
		if name == "" {
			return "", errors.New(MsgFreeTextRequired)
		}
		return name, nil
	}
	name := strings.TrimSpace(selected)
	if name == "" {
		return "", errors.New(MsgNameRequired)
	}
	return name, nil
}

// ParseDuration reads the minimum slot length field.
func ParseDuration(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, errors.New(MsgInvalidDuration)
	}
	return n, nil
}

// ModalDateLabel renders "YYYY-MM-DD" as "2025年6月2日".
func ModalDateLabel(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
}
