package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"groupcal/calendar"
	"groupcal/models"
	"groupcal/services/schedule"
	"groupcal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler serves the JSON API.
type ScheduleHandler struct {
	Service         schedule.ScheduleService
	DefaultDuration int
	MaxUploadBytes  int64
	Now             func() time.Time
}

// NewScheduleHandler creates a ScheduleHandler. maxUploadMB <= 0 disables the body limit.
func NewScheduleHandler(svc schedule.ScheduleService, defaultDuration, maxUploadMB int) *ScheduleHandler {
	if defaultDuration < 1 {
		defaultDuration = 60
	}
	return &ScheduleHandler{
		Service:         svc,
		DefaultDuration: defaultDuration,
		MaxUploadBytes:  int64(maxUploadMB) << 20,
		Now:             time.Now,
	}
}

func respondError(c *gin.Context, err error) {
	utils.JSONError(c, schedule.StatusOf(err), schedule.MessageOf(err))
}

// SubmitScheduleHandler handles POST /schedule/.
func (h *ScheduleHandler) SubmitScheduleHandler(c *gin.Context) {
	logger := getLogger(c)

	form, status, err := parseUpload(c, h.MaxUploadBytes)
	if err != nil {
		utils.JSONError(c, status, err.Error())
		return
	}
	images, err := readImages(form)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	year, month, err := targetMonth(c, h.Now())
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	input := models.ScheduleInput{
		Name:        c.PostForm("name"),
		Text:        c.PostForm("schedule_text"),
		Images:      images,
		TargetYear:  year,
		TargetMonth: month,
	}
	events, err := h.Service.CreateFromInput(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Schedule submitted", zap.String("name", input.Name), zap.Int("images", len(images)), zap.Int("events", len(events)))
	c.JSON(http.StatusOK, events)
}

// GetEventsHandler handles GET /events/?year=&month=.
func (h *ScheduleHandler) GetEventsHandler(c *gin.Context) {
	year, errYear := optionalInt(c.Query("year"), 0)
	month, errMonth := optionalInt(c.Query("month"), 0)
	if errYear != nil || errMonth != nil {
		utils.JSONError(c, http.StatusBadRequest, "year と month は数値で指定してください。")
		return
	}

	events, err := h.Service.EventsForMonth(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetFreeSlotsHandler handles GET /free_slots/.
func (h *ScheduleHandler) GetFreeSlotsHandler(c *gin.Context) {
	year, errYear := optionalInt(c.Query("year"), 0)
	month, errMonth := optionalInt(c.Query("month"), 0)
	if errYear != nil || errMonth != nil {
		utils.JSONError(c, http.StatusBadRequest, "year と month は数値で指定してください。")
		return
	}
	duration, err := optionalInt(c.Query("duration_minutes"), h.DefaultDuration)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "最小持続時間は1以上の数値を指定してください。")
		return
	}

	members, given := c.GetQueryArray("members")
	q := models.FreeSlotQuery{
		Year:            year,
		Month:           month,
		Members:         members,
		MembersGiven:    given,
		DurationMinutes: duration,
		WorkStart:       strings.TrimSpace(c.Query("work_start_time")),
		WorkEnd:         strings.TrimSpace(c.Query("work_end_time")),
	}

	slots, err := h.Service.FreeSlots(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// DeleteByDateNameHandler handles DELETE /events/delete_by_date_name/.
func (h *ScheduleHandler) DeleteByDateNameHandler(c *gin.Context) {
	var payload models.DeleteEventPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, calendar.MsgDeleteMissing)
		return
	}

	result, err := h.Service.DeleteByDateAndName(c.Request.Context(), payload.EventDate, payload.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Deleted events by date and name",
		zap.String("date", payload.EventDate), zap.String("name", payload.Name), zap.Int64("deleted", result.Deleted))
	c.JSON(http.StatusOK, result)
}

// DeleteAllHandler handles DELETE /all_delete. Routed behind the admin middleware.
func (h *ScheduleHandler) DeleteAllHandler(c *gin.Context) {
	n, err := h.Service.DeleteAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Warn("All events deleted", zap.Int64("deleted", n), zap.String("admin", c.GetString("adminSubject")))
	c.JSON(http.StatusOK, models.DeleteResult{
		Message: "すべての予定を削除しました (" + strconv.FormatInt(n, 10) + " 件)。",
		Deleted: n,
	})
}
