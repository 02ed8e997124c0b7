package models

import "slices"

type DeliveryTiming struct {
	Days string `bson:"days" json:"days"`
	Time string `bson:"time" json:"time"`
}

type ContactDetails struct {
	Name        string `bson:"name" json:"name"`
	Phone       string `bson:"phone" json:"phone"`
	WhatsApp    string `bson:"whatsapp" json:"whatsapp"`
	Email       string `bson:"email" json:"email"`
	Address     string `bson:"address" json:"address"`
	MapEmbedURL string `bson:"mapEmbedUrl" json:"mapEmbedUrl"`
}

type ThemeColors struct {
	Primary      string `bson:"primary" json:"primary"`
	PrimaryLight string `bson:"primaryLight" json:"primaryLight"`
	PrimaryDark  string `bson:"primaryDark" json:"primaryDark"`
	Secondary    string `bson:"secondary" json:"secondary"`
	TextDark     string `bson:"textDark" json:"textDark"`
	TextLight    string `bson:"textLight" json:"textLight"`
}

// EditableContent is the site-wide document of marketing copy and
// configuration edited from the admin panel.
type EditableContent struct {
	HomeHeroHeading       string           `bson:"homeHeroHeading" json:"homeHeroHeading"`
	HomeDescription       string           `bson:"homeDescription" json:"homeDescription"`
	HomeServiceHighlights []string         `bson:"homeServiceHighlights" json:"homeServiceHighlights"`
	AboutIntro            string           `bson:"aboutIntro" json:"aboutIntro"`
	AboutServiceArea      string           `bson:"aboutServiceArea" json:"aboutServiceArea"`
	ServicesList          []string         `bson:"servicesList" json:"servicesList"`
	FacilitiesList        []string         `bson:"facilitiesList" json:"facilitiesList"`
	ContactDetails        ContactDetails   `bson:"contactDetails" json:"contactDetails"`
	DeliveryTimings       []DeliveryTiming `bson:"deliveryTimings" json:"deliveryTimings"`
	GalleryItems          []GalleryItem    `bson:"galleryItems" json:"galleryItems"`
	BlogPosts             []BlogPost       `bson:"blogPosts" json:"blogPosts"`
	ThemeColors           ThemeColors      `bson:"themeColors" json:"themeColors"`
	MetaTitle             string           `bson:"metaTitle" json:"metaTitle"`
	MetaDescription       string           `bson:"metaDescription" json:"metaDescription"`
	MetaKeywords          string           `bson:"metaKeywords" json:"metaKeywords"`
}

// ContentKey names one field of EditableContent.
type ContentKey string

const (
	KeyHomeHeroHeading       ContentKey = "homeHeroHeading"
	KeyHomeDescription       ContentKey = "homeDescription"
	KeyHomeServiceHighlights ContentKey = "homeServiceHighlights"
	KeyAboutIntro            ContentKey = "aboutIntro"
	KeyAboutServiceArea      ContentKey = "aboutServiceArea"
	KeyServicesList          ContentKey = "servicesList"
	KeyFacilitiesList        ContentKey = "facilitiesList"
	KeyContactDetails        ContentKey = "contactDetails"
	KeyDeliveryTimings       ContentKey = "deliveryTimings"
	KeyGalleryItems          ContentKey = "galleryItems"
	KeyBlogPosts             ContentKey = "blogPosts"
	KeyThemeColors           ContentKey = "themeColors"
	KeyMetaTitle             ContentKey = "metaTitle"
	KeyMetaDescription       ContentKey = "metaDescription"
	KeyMetaKeywords          ContentKey = "metaKeywords"
)

var ContentKeys = []ContentKey{
	KeyHomeHeroHeading,
	KeyHomeDescription,
	KeyHomeServiceHighlights,
	KeyAboutIntro,
	KeyAboutServiceArea,
	KeyServicesList,
	KeyFacilitiesList,
	KeyContactDetails,
	KeyDeliveryTimings,
	KeyGalleryItems,
	KeyBlogPosts,
	KeyThemeColors,
	KeyMetaTitle,
	KeyMetaDescription,
	KeyMetaKeywords,
}

func (k ContentKey) Valid() bool {
	return slices.Contains(ContentKeys, k)
}

// Clone returns a deep copy so callers can mutate it freely.
func (c EditableContent) Clone() EditableContent {
	out := c
	out.HomeServiceHighlights = slices.Clone(c.HomeServiceHighlights)
	out.ServicesList = slices.Clone(c.ServicesList)
	out.FacilitiesList = slices.Clone(c.FacilitiesList)
	out.DeliveryTimings = slices.Clone(c.DeliveryTimings)
	out.GalleryItems = slices.Clone(c.GalleryItems)
	if c.BlogPosts != nil {
		out.BlogPosts = make([]BlogPost, len(c.BlogPosts))
		for i, p := range c.BlogPosts {
			p.Tags = slices.Clone(p.Tags)
			out.BlogPosts[i] = p
		}
	}
	return out
}

// Complete replaces nil arrays, a missing contact block and blank theme
// colours with the matching value from def, so a document read from
// storage never exposes a null field or an unstyled page. Empty text
// fields are left alone; the editor can clear them on purpose.
func (c *EditableContent) Complete(def EditableContent) {
	if c.ContactDetails == (ContactDetails{}) {
		c.ContactDetails = def.ContactDetails
	}
	c.ThemeColors.fill(def.ThemeColors)

	if c.HomeServiceHighlights == nil {
		c.HomeServiceHighlights = slices.Clone(def.HomeServiceHighlights)
	}
	if c.ServicesList == nil {
		c.ServicesList = slices.Clone(def.ServicesList)
	}
	if c.FacilitiesList == nil {
		c.FacilitiesList = slices.Clone(def.FacilitiesList)
	}
	if c.DeliveryTimings == nil {
		c.DeliveryTimings = slices.Clone(def.DeliveryTimings)
	}
	if c.GalleryItems == nil {
		c.GalleryItems = slices.Clone(def.GalleryItems)
	}
	if c.BlogPosts == nil {
		c.BlogPosts = def.Clone().BlogPosts
	}
	for i := range c.BlogPosts {
		if c.BlogPosts[i].Tags == nil {
			c.BlogPosts[i].Tags = []string{}
		}
	}
}

func (t *ThemeColors) fill(def ThemeColors) {
	t.Primary = orDefault(t.Primary, def.Primary)
	t.PrimaryLight = orDefault(t.PrimaryLight, def.PrimaryLight)
	t.PrimaryDark = orDefault(t.PrimaryDark, def.PrimaryDark)
	t.Secondary = orDefault(t.Secondary, def.Secondary)
	t.TextDark = orDefault(t.TextDark, def.TextDark)
	t.TextLight = orDefault(t.TextLight, def.TextLight)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
