package models

// DefaultContent returns a fresh copy of the initial site content. It is
// seeded on first start and served whenever the stored document is
// missing or unreadable.
func DefaultContent() EditableContent {
	contact := ContactDetails{
		Name:        "BABU NAIDU.V",
		Phone:       "9618656286",
		WhatsApp:    "919618656286",
		Email:       "babunaidu9618@gmail.com",
		Address:     "Chittoor, Andhra Pradesh (AP)",
		MapEmbedURL: "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d12345.67890!2d79.0928!3d13.2081!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x3bad460c4927b2c9%3A0x6b8d7c4b4d6e9f1a!2sChittoor%2C%20Andhra%20Pradesh!5e0!3m2!1sen!2sin!4v1678901234567!5m2!1sen!2sin",
	}

	return EditableContent{
		HomeHeroHeading: "Fast & Reliable Hen Delivery Service",
		HomeDescription: "SRINIVASA BROILERS is your trusted partner for prompt and efficient hen delivery. We understand the importance of timely service and quality, ensuring your orders are handled with utmost care from our facility to your doorstep.",
		HomeServiceHighlights: []string{
			"Speedy Delivery: Get your orders delivered quickly.",
			"Unmatched Reliability: Consistent and dependable service.",
			"Night Delivery: Flexible timings to suit your schedule.",
			"Quality & Freshness: We ensure every hen is in prime condition.",
		},
		AboutIntro:       "SRINIVASA BROILERS is dedicated to providing an unparalleled hen delivery experience. Our commitment to timely delivery and customer convenience sets us apart. We serve a wide area in and around Chittoor, Andhra Pradesh, ensuring fresh hens reach you when you need them most.",
		AboutServiceArea: "Our primary service area includes Chittoor and surrounding regions in Andhra Pradesh. We are continually expanding our reach to serve more customers with our reliable delivery services.",
		ServicesList: []string{
			"On-demand Hen Delivery: Quick service for urgent needs.",
			"Bulk & Small Quantity Orders: Catering to all order sizes.",
			"Scheduled Delivery: Plan your deliveries in advance.",
			"Night-time Delivery: Convenient options for late hours.",
			"Customer-Friendly Service: Our team is here to assist you.",
		},
		FacilitiesList: []string{
			"Safe Handling: Ensuring the well-being and quality of hens.",
			"Reliable Transport: Specialized vehicles for secure delivery.",
			"Order Tracking Support: Stay informed about your delivery status.",
			"Dedicated Customer Support: Always available to help with your queries.",
		},
		ContactDetails: contact,
		DeliveryTimings: []DeliveryTiming{
			{Days: "Monday – Friday", Time: "9:00 PM – 7:00 AM"},
			{Days: "Saturday", Time: "9:00 PM – 6:00 AM"},
			{Days: "Sunday", Time: "10:00 PM – 6:00 AM"},
		},
		GalleryItems: []GalleryItem{
			{ID: "g1", ImageURL: "/images/15.jpeg", AltText: "Delivery Vehicle"},
			{ID: "g2", ImageURL: "/images/4.jpeg", AltText: "Packed Hens"},
			{ID: "g3", ImageURL: "/images/5.jpeg", AltText: "Order Handling"},
			{ID: "g4", ImageURL: "/images/6.jpeg", AltText: "Clean Facility"},
			{ID: "g5", ImageURL: "/images/7.jpeg", AltText: "Happy Customer"},
			{ID: "g6", ImageURL: "/images/8.jpeg", AltText: "Efficient Logistics"},
			{ID: "g7", ImageURL: "/images/9.jpeg", AltText: "Delivery Vehicle"},
			{ID: "g8", ImageURL: "/images/10.jpeg", AltText: "Packed Hens"},
			{ID: "g9", ImageURL: "/images/11.jpeg", AltText: "Order Handling"},
			{ID: "g10", ImageURL: "/images/12.jpeg", AltText: "Clean Facility"},
			{ID: "g11", ImageURL: "/images/13.jpeg", AltText: "Happy Customer"},
			{ID: "g12", ImageURL: "/images/3.jpeg", AltText: "Packed Hens"},
		},
		BlogPosts: []BlogPost{
			{
				ID:       "b1",
				Title:    "The Benefits of Fresh Hen Delivery",
				Author:   "Admin",
				Date:     "2023-10-26",
				ImageURL: "/images/2.jpeg",
				Content:  "Discover why fresh hen delivery is crucial for quality and convenience. Our services ensure you always get the best, right at your doorstep, without any hassle. We prioritize hygiene and speed.",
				Tags:     []string{"delivery", "freshness", "quality"},
			},
			{
				ID:       "b2",
				Title:    "Understanding Our Night-time Delivery",
				Author:   "Admin",
				Date:     "2023-11-15",
				ImageURL: "/images/1.jpeg",
				Content:  "Our night-time delivery option is designed for maximum flexibility. Learn how you can schedule your hen deliveries to perfectly fit your busy lifestyle, making sure you never miss out.",
				Tags:     []string{"delivery", "convenience", "night service"},
			},
		},
		ThemeColors: ThemeColors{
			Primary:      "#10B981",
			PrimaryLight: "#34D399",
			PrimaryDark:  "#059669",
			Secondary:    "#F9FAFB",
			TextDark:     "#1F2937",
			TextLight:    "#6B7280",
		},
		MetaTitle:       "SRINIVASA BROILERS - Fast & Reliable Hen Delivery",
		MetaDescription: "SRINIVASA BROILERS - Your trusted partner for fast, reliable, and convenient hen delivery services in Chittoor, Andhra Pradesh. Order online today!",
		MetaKeywords:    "hen delivery, broiler delivery, chicken order, online poultry, Chittoor, Andhra Pradesh, SRINIVASA BROILERS",
	}
}
