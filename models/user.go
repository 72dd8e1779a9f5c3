package models

// Identity is the authenticated principal as reported by the external auth
// subsystem. Only UID is load-bearing: it partitions the cart and wishlist
// namespaces.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// UserProfile is the users/{uid} document. Writes to it are always
// merge-writes so fields set elsewhere are never clobbered.
type UserProfile struct {
	UID         string `json:"uid" firestore:"uid"`
	Email       string `json:"email" firestore:"email"`
	DisplayName string `json:"displayName" firestore:"displayName"`
	PhotoURL    string `json:"photoURL" firestore:"photoURL"`
}
