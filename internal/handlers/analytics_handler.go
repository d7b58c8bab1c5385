package handlers

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/outlaw-hq/admin-api/internal/cache"
	"github.com/outlaw-hq/admin-api/internal/httperr"
	"github.com/outlaw-hq/admin-api/internal/httpresp"
	"github.com/outlaw-hq/admin-api/internal/logging"
	"github.com/outlaw-hq/admin-api/internal/middleware"
)

const dashboardSnapshotTTL = 30 * time.Second

type AnalyticsHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewAnalyticsHandler(db *gorm.DB, cch *cache.Cache) *AnalyticsHandler {
	return &AnalyticsHandler{db: db, cache: cch}
}

// ======================================================
// USERS
// ======================================================

func (h *AnalyticsHandler) UsersOverview(c *gin.Context) {
	scope := "deleted_at IS NULL"
	args := []any{}
	if start, ok := periodStart(c.Query("period"), time.Now()); ok {
		scope += " AND created_at >= ?"
		args = append(args, start)
	}

	var totals struct {
		TotalUsers       int     `json:"total_users"`
		VerifiedUsers    int     `json:"verified_users"`
		VerificationRate float64 `json:"verification_rate"`
	}
	err := h.db.Raw(`
        SELECT
            COUNT(*) AS total_users,
            COUNT(email_verified_at) AS verified_users,
            COALESCE(COUNT(email_verified_at)::numeric / NULLIF(COUNT(*), 0) * 100, 0) AS verification_rate
        FROM users
        WHERE `+scope, args...).Scan(&totals).Error
	if err != nil {
		httperr.Internal(c, "failed_to_get_overview", "Failed to get user overview.")
		return
	}

	var byPersona []struct {
		PersonaType string `json:"persona_type"`
		Count       int    `json:"count"`
	}
	err = h.db.Raw(`
        SELECT persona_type, COUNT(id) AS count
        FROM users
        WHERE `+scope+`
        GROUP BY persona_type
        ORDER BY count DESC`, args...).Scan(&byPersona).Error
	if err != nil {
		httperr.Internal(c, "failed_to_get_overview", "Failed to get user overview.")
		return
	}

	httpresp.OK(c, gin.H{
		"totalUsers":    gin.H{"total_users": totals.TotalUsers},
		"byPersonaType": byPersona,
		"verification": gin.H{
			"total_users":       totals.TotalUsers,
			"verified_users":    totals.VerifiedUsers,
			"verification_rate": totals.VerificationRate,
		},
		"message": "User overview retrieved successfully",
	})
}

func (h *AnalyticsHandler) UserGrowth(c *gin.Context) {
	days := 30
	if v, err := strconv.Atoi(c.Query("period")); err == nil && v > 0 && v <= 365 {
		days = v
	}
	startDate := time.Now().AddDate(0, 0, -days)

	var daily []struct {
		Date     string `json:"date"`
		NewUsers int    `json:"new_users"`
	}
	err := h.db.Raw(`
        SELECT DATE(created_at)::text AS date, COUNT(id) AS new_users
        FROM users
        WHERE created_at >= ?
        GROUP BY DATE(created_at)
        ORDER BY DATE(created_at) ASC`, startDate).Scan(&daily).Error
	if err != nil {
		httperr.Internal(c, "failed_to_get_growth", "Failed to get user growth data.")
		return
	}

	type growthPoint struct {
		Date            string `json:"date"`
		NewUsers        int    `json:"new_users"`
		CumulativeUsers int    `json:"cumulative_users"`
	}

	cumulative := 0
	out := make([]growthPoint, 0, len(daily))
	for _, d := range daily {
		cumulative += d.NewUsers
		out = append(out, growthPoint{
			Date:            d.Date,
			NewUsers:        d.NewUsers,
			CumulativeUsers: cumulative,
		})
	}

	httpresp.OK(c, out)
}

func (h *AnalyticsHandler) UserDemographics(c *gin.Context) {
	type bucket struct {
		Value    string `json:"value"`
		Count    int    `json:"count"`
		Founders int    `json:"founders"`
		SMEs     int    `json:"smes"`
	}

	demographicsQuery := func(column string) ([]bucket, error) {
		var rows []bucket
		err := h.db.Raw(`
            SELECT
                ui.` + column + ` AS value,
                COUNT(ui.id) AS count,
                COUNT(CASE WHEN u.persona_type = 'founder' THEN 1 END) AS founders,
                COUNT(CASE WHEN u.persona_type = 'sme' THEN 1 END) AS smes
            FROM user_informations ui
            JOIN users u ON u.id = ui.user_id AND u.deleted_at IS NULL
            WHERE ui.` + column + ` IS NOT NULL AND ui.` + column + ` <> ''
            GROUP BY ui.` + column + `
            ORDER BY count DESC
            LIMIT 20`).Scan(&rows).Error
		return rows, err
	}

	byCountry, err := demographicsQuery("country")
	if err != nil {
		httperr.Internal(c, "failed_to_get_demographics", "Failed to get user demographics.")
		return
	}
	byIndustry, err := demographicsQuery("industry")
	if err != nil {
		httperr.Internal(c, "failed_to_get_demographics", "Failed to get user demographics.")
		return
	}

	var completion struct {
		TotalProfiles  int     `json:"total_profiles"`
		WithName       int     `json:"with_name"`
		WithIndustry   int     `json:"with_industry"`
		WithCountry    int     `json:"with_country"`
		WithLinkedin   int     `json:"with_linkedin"`
		WithCv         int     `json:"with_cv"`
		CompletionRate float64 `json:"completion_rate"`
	}
	err = h.db.Raw(`
        SELECT
            COUNT(id) AS total_profiles,
            COUNT(CASE WHEN name <> '' THEN 1 END) AS with_name,
            COUNT(CASE WHEN industry <> '' THEN 1 END) AS with_industry,
            COUNT(CASE WHEN country <> '' THEN 1 END) AS with_country,
            COUNT(CASE WHEN linked_in <> '' THEN 1 END) AS with_linkedin,
            COUNT(CASE WHEN cv_url <> '' THEN 1 END) AS with_cv,
            COALESCE(COUNT(CASE WHEN name <> '' AND industry <> '' AND country <> '' THEN 1 END)::numeric
                / NULLIF(COUNT(*), 0) * 100, 0) AS completion_rate
        FROM user_informations`).Scan(&completion).Error
	if err != nil {
		httperr.Internal(c, "failed_to_get_demographics", "Failed to get user demographics.")
		return
	}

	httpresp.OK(c, gin.H{
		"byCountry":         byCountry,
		"byIndustry":        byIndustry,
		"profileCompletion": completion,
		"message":           "User demographics retrieved successfully",
	})
}

// ======================================================
// IDEAS / FORMS
// ======================================================

func (h *AnalyticsHandler) IdeasOverview(c *gin.Context) {
	var byStatus []struct {
		Status string `json:"status"`
		Count  int    `json:"count"`
	}
	err := h.db.Raw(`
        SELECT status, COUNT(id) AS count
        FROM ideas
        GROUP BY status`).Scan(&byStatus).Error
	if err != nil {
		httperr.Internal(c, "failed_to_get_overview", "Failed to get ideas overview.")
		return
	}

	var artifacts struct {
		TotalIdeas    int `json:"total_ideas"`
		WithPitchDeck int `json:"with_pitch_deck"`
		WithVoiceNote int `json:"with_voice_note"`
		WithDocument  int `json:"with_document"`
	}
	err = h.db.Raw(`
        SELECT
            COUNT(id) AS total_ideas,
            COUNT(CASE WHEN pitch_deck <> '' THEN 1 END) AS with_pitch_deck,
            COUNT(CASE WHEN voice_note <> '' THEN 1 END) AS with_voice_note,
            COUNT(CASE WHEN document <> '' THEN 1 END) AS with_document
        FROM ideas`).Scan(&artifacts).Error
	if err != nil {
		httperr.Internal(c, "failed_to_get_overview", "Failed to get ideas overview.")
		return
	}

	httpresp.OK(c, gin.H{
		"byStatus":  byStatus,
		"artifacts": artifacts,
		"message":   "Ideas overview retrieved successfully",
	})
}

func (h *AnalyticsHandler) FormsOverview(c *gin.Context) {
	var overview struct {
		TotalForms         int     `json:"total_forms"`
		FormsWithURL       int     `json:"forms_with_url"`
		TotalResponses     int     `json:"total_responses"`
		FormsWithResponses int     `json:"forms_with_responses"`
		CompletionRate     float64 `json:"completion_rate"`
	}
	err := h.db.Raw(`
        SELECT
            COUNT(DISTINCT f.id) AS total_forms,
            COUNT(DISTINCT CASE WHEN f.form_url <> '' THEN f.id END) AS forms_with_url,
            COUNT(fr.id) AS total_responses,
            COUNT(DISTINCT fr.form_id) AS forms_with_responses,
            COALESCE(COUNT(DISTINCT fr.form_id)::numeric
                / NULLIF(COUNT(DISTINCT f.id)::numeric, 0) * 100, 0) AS completion_rate
        FROM forms f
        LEFT JOIN form_responses fr ON fr.form_id = f.id`).Scan(&overview).Error
	if err != nil {
		httperr.Internal(c, "failed_to_get_overview", "Failed to get forms overview.")
		return
	}

	httpresp.OK(c, gin.H{
		"overview": overview,
		"message":  "Forms overview retrieved successfully",
	})
}

// ======================================================
// BOOKINGS
// ======================================================

func (h *AnalyticsHandler) BookingsOverview(c *gin.Context) {
	var byStatus struct {
		TotalBookings int `json:"total_bookings"`
		Pending       int `json:"pending"`
		Scheduled     int `json:"scheduled"`
		Completed     int `json:"completed"`
		Cancelled     int `json:"cancelled"`
	}
	err := h.db.Raw(`
        SELECT
            COUNT(id) AS total_bookings,
            COUNT(CASE WHEN status = 'pending' THEN 1 END) AS pending,
            COUNT(CASE WHEN status = 'scheduled' THEN 1 END) AS scheduled,
            COUNT(CASE WHEN status = 'completed' THEN 1 END) AS completed,
            COUNT(CASE WHEN status = 'cancelled' THEN 1 END) AS cancelled
        FROM bookings`).Scan(&byStatus).Error
	if err != nil {
		httperr.Internal(c, "failed_to_get_overview", "Failed to get bookings overview.")
		return
	}

	var sessions struct {
		CompletedSessions  int     `json:"completed_sessions"`
		AvgDurationMinutes float64 `json:"avg_duration_minutes"`
	}
	err = h.db.Raw(`
        SELECT
            COUNT(id) AS completed_sessions,
            COALESCE(AVG(EXTRACT(EPOCH FROM (end_time - start_time)) / 60), 0) AS avg_duration_minutes
        FROM bookings
        WHERE status = 'completed'`).Scan(&sessions).Error
	if err != nil {
		httperr.Internal(c, "failed_to_get_overview", "Failed to get bookings overview.")
		return
	}

	httpresp.OK(c, gin.H{
		"byStatus": byStatus,
		"sessions": sessions,
		"message":  "Bookings overview retrieved successfully",
	})
}

// ======================================================
// ENGAGEMENT / SME
// ======================================================

func (h *AnalyticsHandler) EngagementFunnel(c *gin.Context) {
	var funnel struct {
		TotalUsers         int `json:"total_users"`
		UsersWithProfiles  int `json:"users_with_profiles"`
		UsersWithIdeas     int `json:"users_with_ideas"`
		UsersWithForms     int `json:"users_with_forms"`
		UsersWithResponses int `json:"users_with_responses"`
	}
	err := h.db.Raw(`
        SELECT
            COUNT(DISTINCT u.id) AS total_users,
            COUNT(DISTINCT ui.user_id) AS users_with_profiles,
            COUNT(DISTINCT i.user_id) AS users_with_ideas,
            COUNT(DISTINCT f.creator_id) AS users_with_forms,
            COUNT(DISTINCT fr.responder_id) AS users_with_responses
        FROM users u
        LEFT JOIN user_informations ui ON ui.user_id = u.id
        LEFT JOIN ideas i ON i.user_id = u.id
        LEFT JOIN forms f ON f.creator_id = u.id
        LEFT JOIN form_responses fr ON fr.responder_id = u.id
        WHERE u.deleted_at IS NULL`).Scan(&funnel).Error
	if err != nil {
		httperr.Internal(c, "failed_to_get_funnel", "Failed to get engagement funnel.")
		return
	}

	httpresp.OK(c, gin.H{
		"funnel":  funnel,
		"message": "Engagement funnel retrieved successfully",
	})
}

func (h *AnalyticsHandler) SMEOverview(c *gin.Context) {
	var overview struct {
		TotalSmes      int `json:"total_smes"`
		VerifiedSmes   int `json:"verified_smes"`
		RespondingSmes int `json:"responding_smes"`
	}
	err := h.db.Raw(`
        SELECT
            COUNT(DISTINCT u.id) AS total_smes,
            COUNT(DISTINCT CASE WHEN u.email_verified_at IS NOT NULL THEN u.id END) AS verified_smes,
            COUNT(DISTINCT fr.responder_id) AS responding_smes
        FROM users u
        LEFT JOIN form_responses fr ON fr.responder_id = u.id
        WHERE u.persona_type = 'sme' AND u.deleted_at IS NULL`).Scan(&overview).Error
	if err != nil {
		httperr.Internal(c, "failed_to_get_overview", "Failed to get SME overview.")
		return
	}

	var byIndustry []struct {
		Industry string `json:"industry"`
		SMECount int    `json:"sme_count"`
	}
	err = h.db.Raw(`
        SELECT ui.industry, COUNT(ui.id) AS sme_count
        FROM user_informations ui
        JOIN users u ON u.id = ui.user_id
        WHERE u.persona_type = 'sme' AND u.deleted_at IS NULL
            AND ui.industry IS NOT NULL AND ui.industry <> ''
        GROUP BY ui.industry
        ORDER BY sme_count DESC
        LIMIT 10`).Scan(&byIndustry).Error
	if err != nil {
		httperr.Internal(c, "failed_to_get_overview", "Failed to get SME overview.")
		return
	}

	httpresp.OK(c, gin.H{
		"overview":   overview,
		"byIndustry": byIndustry,
		"message":    "SME overview retrieved successfully",
	})
}

// ======================================================
// REALTIME DASHBOARD
// ======================================================

type dashboardSnapshot struct {
	NewUsersToday     int       `json:"new_users_today"`
	NewIdeasToday     int       `json:"new_ideas_today"`
	NewResponsesToday int       `json:"new_responses_today"`
	GeneratedAt       time.Time `json:"generated_at"`
}

// Realtime serves today's counters. The snapshot is cached briefly in redis
// since dashboards poll this endpoint aggressively.
func (h *AnalyticsHandler) Realtime(c *gin.Context) {
	ctx := c.Request.Context()

	if b, ok := h.cache.DashboardSnapshot(ctx); ok {
		var snap dashboardSnapshot
		if err := json.Unmarshal(b, &snap); err == nil {
			httpresp.OK(c, gin.H{"dashboard": snap, "cached": true})
			return
		}
	}

	var snap dashboardSnapshot
	err := h.db.Raw(`
        SELECT
            (SELECT COUNT(*) FROM users WHERE DATE(created_at) = CURRENT_DATE) AS new_users_today,
            (SELECT COUNT(*) FROM ideas WHERE DATE(created_at) = CURRENT_DATE) AS new_ideas_today,
            (SELECT COUNT(*) FROM form_responses WHERE DATE(created_at) = CURRENT_DATE) AS new_responses_today`).
		Scan(&snap).Error
	if err != nil {
		httperr.Internal(c, "failed_to_get_dashboard", "Failed to get realtime dashboard.")
		return
	}
	snap.GeneratedAt = time.Now()

	if b, err := json.Marshal(snap); err == nil {
		if err := h.cache.SetDashboardSnapshot(ctx, b, dashboardSnapshotTTL); err != nil {
			logging.WithRequestID(middleware.RequestID(c)).
				Warn("failed to cache dashboard snapshot", zap.Error(err))
		}
	}

	httpresp.OK(c, gin.H{"dashboard": snap, "cached": false})
}
