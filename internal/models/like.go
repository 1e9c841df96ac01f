package models

// LikeStatus is returned by the like check endpoint.
type LikeStatus struct {
	Liked bool `json:"liked"`
}

// LikeCount is returned by the like count endpoint.
type LikeCount struct {
	LikeCount int64 `json:"likeCount"`
}

// LikeResult is returned after liking or unliking a post.
type LikeResult struct {
	Message   string `json:"message"`
	LikeCount int64  `json:"likeCount"`
}
