package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/fathima-sithara/socialnet/internal/auth"
	"github.com/fathima-sithara/socialnet/internal/handlers"
	"github.com/fathima-sithara/socialnet/internal/metrics"
	"github.com/fathima-sithara/socialnet/internal/middleware"
	"github.com/fathima-sithara/socialnet/internal/realtime"
)

// Deps carries everything route registration needs.
type Deps struct {
	Tokens  *auth.Manager
	Limiter *middleware.RateLimiter

	Auth          *handlers.AuthHandler
	Users         *handlers.UserHandler
	Follows       *handlers.FollowHandler
	Posts         *handlers.PostHandler
	Messages      *handlers.MessageHandler
	Groups        *handlers.GroupHandler
	Notifications *handlers.NotificationHandler
	WS            *handlers.WSHandler

	Hub *realtime.Hub
}

func Register(app *fiber.App, d Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	if d.Limiter != nil {
		authGroup.Use(d.Limiter.MiddlewareByKey(middleware.ByIP))
	}
	authGroup.Post("/register", d.Auth.Register)
	authGroup.Post("/login", d.Auth.Login)

	protected := api.Group("", middleware.JWTAuth(d.Tokens))

	protected.Get("/me", d.Auth.Profile)
	protected.Put("/me", d.Auth.UpdateProfile)

	users := protected.Group("/users")
	users.Get("/", d.Users.List)
	users.Get("/search", d.Users.Search)
	users.Get("/suggested", d.Users.Suggested)
	users.Get("/recent-chats", d.Users.RecentChats)
	users.Post("/recent-chats/:id", d.Users.AddRecentChat)
	users.Get("/:id", d.Users.GetByID)
	users.Get("/:id/followers", d.Follows.Followers)
	users.Get("/:id/following", d.Follows.Following)

	follow := protected.Group("/follow")
	follow.Post("/:id", d.Follows.Follow)
	follow.Delete("/:id", d.Follows.Unfollow)
	follow.Get("/:id/status", d.Follows.Status)

	posts := protected.Group("/posts")
	posts.Post("/", d.Posts.Create)
	posts.Get("/", d.Posts.ListAll)
	posts.Get("/user/:userId", d.Posts.ListByUser)
	posts.Delete("/:postId", d.Posts.Delete)
	posts.Post("/:postId/like", d.Posts.Like)
	posts.Post("/:postId/comments", d.Posts.Comment)
	posts.Get("/:postId/comments", d.Posts.Comments)
	posts.Post("/:postId/comments/:commentId/replies", d.Posts.Reply)
	posts.Get("/:postId/counts", d.Posts.Counts)

	messages := protected.Group("/messages")
	messages.Post("/", d.Messages.Send)
	messages.Get("/group/:groupId", d.Messages.GroupHistory)
	messages.Get("/:user1/:user2", d.Messages.History)

	groups := protected.Group("/groups")
	groups.Post("/", d.Groups.Create)
	groups.Get("/", d.Groups.Mine)
	groups.Get("/:groupId", d.Groups.Get)
	groups.Post("/:groupId/members/:userId", d.Groups.AddMember)
	groups.Delete("/:groupId/members/:userId", d.Groups.RemoveMember)

	notifications := protected.Group("/notifications")
	notifications.Get("/", d.Notifications.List)
	notifications.Get("/unseen-count", d.Notifications.UnseenCount)
	notifications.Post("/:id/seen", d.Notifications.MarkSeen)
	notifications.Delete("/seen", d.Notifications.CleanupSeen)

	// Websocket upgrade. Token auth happens inside the handler so a
	// rejected client gets a readable close frame instead of a 401.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(d.WS.Serve))
}
