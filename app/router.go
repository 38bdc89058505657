package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/OptimisticTrousers/word-reminder-sub001/app/autowordreminder"
	"github.com/OptimisticTrousers/word-reminder-sub001/app/root"
	"github.com/OptimisticTrousers/word-reminder-sub001/app/user"
	"github.com/OptimisticTrousers/word-reminder-sub001/app/userword"
	"github.com/OptimisticTrousers/word-reminder-sub001/app/word"
	"github.com/OptimisticTrousers/word-reminder-sub001/app/wordreminder"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/middleware"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type RouterOpts struct {
	CORSOrigins []string
	// Requests per second per client IP, 0 disables limiting
	RateLimit int
}

func NewRouter(d *internal.Deps, opts RouterOpts) *gin.Engine {
	router := gin.New()

	// Words never change once stored so their responses can be cached
	responseStore := persist.NewMemoryStore(time.Minute)

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     splitOrigins(opts.CORSOrigins),
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == http.MethodHead
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v, ok := c.Get("userID"); ok {
					fields = append(fields, zap.Any("user_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: opts.RateLimit,
		Burst:             opts.RateLimit * 2,
	})
	userID := middleware.NewUserIDMiddleware(d.Store)
	jsonBody := middleware.BodySizeLimiter(1 << 20)

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", func(c *gin.Context) { root.Heartbeat(c, d) })

		// GET /api/words/:word		-> Returns a stored dictionary entry
		m.GET("/words/:word", cacheFor(responseStore, 5*60), func(c *gin.Context) { word.WordFetch(c, d) })

		// GET /api/words/id/:wordId	-> Returns a stored dictionary entry by ID
		m.GET("/words/id/:wordId", cacheFor(responseStore, 5*60), func(c *gin.Context) { word.WordFetchByID(c, d) })
	}

	u := m.Group("/users")
	{
		// POST /api/users 		-> Creates a new user
		u.POST("", jsonBody, func(c *gin.Context) { user.UserCreate(c, d) })

		// DELETE /api/users/:userId 	-> Deletes a user and everything they own
		u.DELETE("/:userId", userID, func(c *gin.Context) { user.UserDelete(c, d) })
	}

	owned := u.Group("/:userId", userID)

	// /words is kept as an alias of /userWords for older clients
	for _, path := range []string{"/userWords", "/words"} {
		uw := owned.Group(path)
		{
			// GET /api/users/:userId/userWords		-> Lists a user's words
			uw.GET("", func(c *gin.Context) { userword.UserWordList(c, d) })

			// POST /api/users/:userId/userWords		-> Adds a word or a csv of words
			uw.POST("", middleware.BodySizeLimiter(d.MaxUploadSize+(1<<20)), func(c *gin.Context) { userword.UserWordCreate(c, d) })

			// GET /api/users/:userId/userWords/:userWordId	-> Returns a user word
			uw.GET("/:userWordId", func(c *gin.Context) { userword.UserWordFetch(c, d) })

			// PUT /api/users/:userId/userWords/:userWordId	-> Marks a user word as learned or not
			uw.PUT("/:userWordId", jsonBody, func(c *gin.Context) { userword.UserWordUpdate(c, d) })

			// DELETE /api/users/:userId/userWords/:userWordId	-> Deletes a user word
			uw.DELETE("/:userWordId", func(c *gin.Context) { userword.UserWordDelete(c, d) })
		}
	}

	wr := owned.Group("/wordReminders")
	{
		// GET /api/users/:userId/wordReminders		-> Lists a user's word reminders
		wr.GET("", func(c *gin.Context) { wordreminder.WordReminderList(c, d) })

		// POST /api/users/:userId/wordReminders		-> Creates a word reminder
		wr.POST("", jsonBody, func(c *gin.Context) { wordreminder.WordReminderCreate(c, d) })

		// DELETE /api/users/:userId/wordReminders		-> Deletes every word reminder of a user
		wr.DELETE("", func(c *gin.Context) { wordreminder.WordReminderDeleteAll(c, d) })

		// GET /api/users/:userId/wordReminders/:wordReminderId	-> Returns a word reminder
		wr.GET("/:wordReminderId", func(c *gin.Context) { wordreminder.WordReminderFetch(c, d) })

		// PUT /api/users/:userId/wordReminders/:wordReminderId	-> Updates a word reminder
		wr.PUT("/:wordReminderId", jsonBody, func(c *gin.Context) { wordreminder.WordReminderUpdate(c, d) })

		// DELETE /api/users/:userId/wordReminders/:wordReminderId	-> Deletes a word reminder
		wr.DELETE("/:wordReminderId", func(c *gin.Context) { wordreminder.WordReminderDelete(c, d) })
	}

	awr := owned.Group("/autoWordReminders")
	{
		// GET /api/users/:userId/autoWordReminders		-> Returns the auto word reminder settings
		awr.GET("", func(c *gin.Context) { autowordreminder.AutoWordReminderFetch(c, d) })

		// POST /api/users/:userId/autoWordReminders		-> Creates the auto word reminder settings
		awr.POST("", jsonBody, func(c *gin.Context) { autowordreminder.AutoWordReminderCreate(c, d) })

		// PUT /api/users/:userId/autoWordReminders/:autoWordReminderId	-> Updates the settings
		awr.PUT("/:autoWordReminderId", jsonBody, func(c *gin.Context) { autowordreminder.AutoWordReminderUpdate(c, d) })

		// DELETE /api/users/:userId/autoWordReminders/:autoWordReminderId	-> Deletes the settings
		awr.DELETE("/:autoWordReminderId", func(c *gin.Context) { autowordreminder.AutoWordReminderDelete(c, d) })
	}

	return router
}

// splitOrigins accepts both a list and comma separated values from the
// environment
func splitOrigins(in []string) []string {
	out := []string{}
	for _, o := range in {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	if len(out) == 0 {
		out = append(out, "http://localhost:5173")
	}

	return out
}

func cacheFor(store persist.CacheStore, sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
