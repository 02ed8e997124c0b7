package models

// GalleryItem is one picture on the gallery page. ID is the stable key
// used by the admin editor to modify or remove it.
type GalleryItem struct {
	ID       string `bson:"id" json:"id"`
	ImageURL string `bson:"imageUrl" json:"imageUrl"`
	AltText  string `bson:"altText" json:"altText"`
}

type BlogPost struct {
	ID       string   `bson:"id" json:"id"`
	Title    string   `bson:"title" json:"title"`
	Author   string   `bson:"author" json:"author"`
	Date     string   `bson:"date" json:"date"`
	ImageURL string   `bson:"imageUrl" json:"imageUrl"`
	Content  string   `bson:"content" json:"content"`
	Tags     []string `bson:"tags" json:"tags"`
}
