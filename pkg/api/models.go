package api

// Role values carried on a User. The server is the authority on what a
// role may do; clients only use these for UI gating.
const (
	RoleAdmin  = "admin"
	RoleWriter = "writer"
	RoleUser   = "user"
)

// Article is a wall-magazine article as returned by the API. Content is
// raw HTML and must be sanitized before rendering. Liked reflects the
// viewing user's like state when the request carried a token.
type Article struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	CategoryID   int    `json:"category_id"`
	CategoryName string `json:"category_name"`
	UserID       int    `json:"user_id"`
	Username     string `json:"username"`
	Image        string `json:"image"`
	Liked        bool   `json:"liked"`
	Likes        int    `json:"likes"`
	Views        int    `json:"views"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// Category groups articles. Deleting a category does not cascade to the
// articles referencing it; the server decides what a dangling reference
// means.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Comment belongs to exactly one article and one author.
type Comment struct {
	ID        int    `json:"id"`
	ArticleID int    `json:"article_id"`
	UserID    int    `json:"user_id"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// User is an account on the site. Role is mutable independently of the
// other fields through UserService.UpdateRole.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// CanModerate reports whether u may edit or delete a comment authored by
// userID. This gates buttons only; the server re-checks every mutation.
func (u User) CanModerate(userID int) bool {
	return u.ID == userID || u.Role == RoleAdmin
}

// Stats is the admin dashboard aggregate returned by GET /stats.
type Stats struct {
	Users            int      `json:"users"`
	Articles         int      `json:"articles"`
	Comments         int      `json:"comments"`
	MostViewedArticle *Article `json:"most_viewed_article"`
	MostLikedArticle  *Article `json:"most_liked_article"`
}

// Credentials is the payload for POST /auth/login and /auth/register.
type Credentials struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// AuthResponse is returned by the auth endpoints.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// statusResponse is the mutation envelope used by the API: either
// {"success":true,...} or {"error":"..."}.
type statusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	User    *User  `json:"user"`
}
