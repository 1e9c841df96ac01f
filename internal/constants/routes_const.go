package constants

// Base Routes
const (
	APIBasePath = "/api"
	HealthPath  = "/health"
	VersionPath = "/version"
	RoutesPath  = "/routes"
)

// Authentication Routes (relative to /api/auth)
const (
	AuthBasePath           = "/auth"
	AuthRegisterPath       = "/register"
	AuthLoginPath          = "/login"
	AuthForgotPasswordPath = "/forgot-password"
	AuthResetPasswordPath  = "/reset-password"
)

// User Management Routes (relative to /api/users)
const (
	UsersBasePath = "/users"
	UserStatsPath = "/stats"
)

// Post Routes (relative to /api/posts)
const (
	PostsBasePath      = "/posts"
	PostAdminAllPath   = "/admin/all"
	PostAdminByIDPath  = "/admin/{id}"
	PostMyPostsPath    = "/my-posts"
	PostEditPath       = "/edit/{id}"
	PostUploadPath     = "/upload"
	PostBySlugPath     = "/{slug}"
	PostCommentsPath   = "/{postId}/comments"
	PostLikesPath      = "/{postId}/likes"
	PostLikeCheckPath  = "/{postId}/likes/check"
	PostLikeCountPath  = "/{postId}/likes/count"
	CommentsBasePath   = "/comments"
	NewsletterBasePath = "/newsletter"
)

// Newsletter Routes (relative to /api/newsletter)
const (
	NewsletterSubscribePath   = "/subscribe"
	NewsletterUnsubscribePath = "/unsubscribe"
	NewsletterVerifyPath      = "/verify/{token}"
)

// URL Parameters
const (
	ParamID     = "id"
	ParamPostID = "postId"
	ParamSlug   = "slug"
	ParamToken  = "token"
)

// Form fields
const (
	FormFieldImage = "image"
)
