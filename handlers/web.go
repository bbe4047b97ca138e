package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"groupcal/calendar"
	"groupcal/models"
	"groupcal/services/schedule"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PageData feeds templates/index.html.
type PageData struct {
	Month     calendar.Month
	PrevYear  int
	PrevMonth int
	NextYear  int
	NextMonth int

	Members  []string
	Selected map[string]bool
	Duration string

	FreeDays    []calendar.FreeDay
	FreeMessage string
	FreeError   string

	Flash string
	Error string

	NameOptions      []string
	FreeTextOption   string
	NoDeleteTargets  string
	NoMembersMessage string
}

// WebHandler renders the calendar page and handles its form posts.
type WebHandler struct {
	Service         schedule.ScheduleService
	DefaultDuration int
	MaxUploadBytes  int64
	Now             func() time.Time
}

func NewWebHandler(svc schedule.ScheduleService, defaultDuration, maxUploadMB int) *WebHandler {
	if defaultDuration < 1 {
		defaultDuration = 60
	}
	return &WebHandler{
		Service:         svc,
		DefaultDuration: defaultDuration,
		MaxUploadBytes:  int64(maxUploadMB) << 20,
		Now:             time.Now,
	}
}

// displayedMonth reads year/month from the query. Anything missing or out of range shows the current month.
func (h *WebHandler) displayedMonth(c *gin.Context) (int, int) {
	now := h.Now()
	year, errYear := optionalInt(c.Query("year"), now.Year())
	month, errMonth := optionalInt(c.Query("month"), int(now.Month()))
	if errYear != nil || errMonth != nil || month < 1 || month > 12 || year < 1 || year > 9999 {
		return now.Year(), int(now.Month())
	}
	return year, month
}

// IndexHandler handles GET /.
func (h *WebHandler) IndexHandler(c *gin.Context) {
	ctx := c.Request.Context()
	year, month := h.displayedMonth(c)

	data := PageData{
		Flash:            c.Query("flash"),
		Error:            c.Query("error"),
		FreeTextOption:   calendar.FreeTextOption,
		NoDeleteTargets:  calendar.MsgNoDeleteTargets,
		NoMembersMessage: calendar.MsgNoMembers,
		Duration:         strings.TrimSpace(c.Query("duration")),
	}
	data.PrevYear, data.PrevMonth = calendar.Shift(year, month, -1)
	data.NextYear, data.NextMonth = calendar.Shift(year, month, 1)
	if data.Duration == "" {
		data.Duration = strconv.Itoa(h.DefaultDuration)
	}

	events, err := h.Service.EventsForMonth(ctx, year, month)
	if err != nil {
		getLogger(c).Error("Failed to load month", zap.Int("year", year), zap.Int("month", month), zap.Error(err))
		data.Error = schedule.MessageOf(err)
		events = []models.Event{}
	}
	data.Month = calendar.BuildMonth(year, month, events)
	data.Members = calendar.Members(events)
	data.NameOptions = data.Members

	_, filtered := c.GetQuery("filter")
	data.Selected = make(map[string]bool)
	var selected []string
	if filtered {
		for _, m := range c.QueryArray("members") {
			if m = strings.TrimSpace(m); m != "" && !data.Selected[m] {
				data.Selected[m] = true
				selected = append(selected, m)
			}
		}
	} else {
		for _, m := range data.Members {
			data.Selected[m] = true
		}
		selected = data.Members
	}

	h.fillFreeSlots(c, &data, year, month, selected)
	c.HTML(http.StatusOK, "index.html", data)
}

func (h *WebHandler) fillFreeSlots(c *gin.Context, data *PageData, year, month int, selected []string) {
	if len(data.Members) == 0 {
		data.FreeMessage = calendar.MsgNoMembers
		return
	}
	if len(selected) == 0 {
		data.FreeError = calendar.MsgSelectMember
		return
	}
	duration, err := calendar.ParseDuration(data.Duration)
	if err != nil {
		data.FreeError = err.Error()
		return
	}

	slots, err := h.Service.FreeSlots(c.Request.Context(), models.FreeSlotQuery{
		Year:            year,
		Month:           month,
		Members:         selected,
		MembersGiven:    true,
		DurationMinutes: duration,
	})
	if err != nil {
		data.FreeError = schedule.MessageOf(err)
		return
	}
	data.FreeDays = calendar.FormatFreeSlots(slots)
	if len(data.FreeDays) == 0 {
		data.FreeMessage = calendar.MsgNoCommonSlots
	}
}

func redirectHome(c *gin.Context, year, month int, key, msg string) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(year))
	q.Set("month", strconv.Itoa(month))
	if msg != "" {
		q.Set(key, msg)
	}
	c.Redirect(http.StatusSeeOther, "/?"+q.Encode())
}

// SubmitScheduleFormHandler handles POST /ui/schedule.
func (h *WebHandler) SubmitScheduleFormHandler(c *gin.Context) {
	now := h.Now()
	form, _, err := parseUpload(c, h.MaxUploadBytes)
	if err != nil {
		redirectHome(c, now.Year(), int(now.Month()), "error", err.Error())
		return
	}
	year, month, err := targetMonth(c, now)
	if err != nil {
		redirectHome(c, now.Year(), int(now.Month()), "error", err.Error())
		return
	}
	name, err := calendar.ResolveName(c.PostForm("name_select"), c.PostForm("name_free_text"))
	if err != nil {
		redirectHome(c, year, month, "error", err.Error())
		return
	}
	text := c.PostForm("schedule_text")
	images, err := readImages(form)
	if err != nil {
		redirectHome(c, year, month, "error", err.Error())
		return
	}
	if strings.TrimSpace(text) == "" && len(images) == 0 {
		redirectHome(c, year, month, "error", calendar.MsgInputRequired)
		return
	}

	events, err := h.Service.CreateFromInput(c.Request.Context(), models.ScheduleInput{
		Name:        name,
		Text:        text,
		Images:      images,
		TargetYear:  year,
		TargetMonth: month,
	})
	if err != nil {
		redirectHome(c, year, month, "error", schedule.MessageOf(err))
		return
	}
	getLogger(c).Info("Schedule submitted from page", zap.String("name", name), zap.Int("events", len(events)))
	redirectHome(c, year, month, "flash", calendar.MsgSubmitted)
}

// DeleteFormHandler handles POST /ui/delete.
func (h *WebHandler) DeleteFormHandler(c *gin.Context) {
	year, month := h.displayedMonthFromForm(c)
	date := strings.TrimSpace(c.PostForm("event_date"))
	name := strings.TrimSpace(c.PostForm("name"))
	if date == "" || name == "" {
		redirectHome(c, year, month, "error", calendar.MsgDeleteMissing)
		return
	}

	result, err := h.Service.DeleteByDateAndName(c.Request.Context(), date, name)
	if err != nil {
		redirectHome(c, year, month, "error", schedule.MessageOf(err))
		return
	}
	redirectHome(c, year, month, "flash", result.Message)
}

func (h *WebHandler) displayedMonthFromForm(c *gin.Context) (int, int) {
	now := h.Now()
	year, errYear := optionalInt(c.PostForm("year"), now.Year())
	month, errMonth := optionalInt(c.PostForm("month"), int(now.Month()))
	if errYear != nil || errMonth != nil || month < 1 || month > 12 {
		return now.Year(), int(now.Month())
	}
	return year, month
}
