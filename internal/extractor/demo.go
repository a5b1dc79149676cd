// internal/extractor/demo.go
package extractor

// DemoContent returns a fixed, realistic sample result without touching the
// network. It lets the form, preview, and download flows be exercised
// independently of extraction reliability.
func DemoContent() *ExtractedContent {
	return &ExtractedContent{
		Text: `🚀 Excited to share our latest innovation in AI technology! Our team has been working tirelessly to develop a revolutionary machine learning platform that will transform how businesses approach data analytics. The future of intelligent automation is here, and we're proud to be leading the charge.

Key highlights:
✅ 40% faster processing speed
✅ Enhanced accuracy with 99.2% precision
✅ Seamless integration with existing systems
✅ Cost-effective solution for enterprises

Thank you to everyone who supported this journey. Looking forward to the amazing possibilities ahead!

#Innovation #Technology #AI #MachineLearning #Future #Startup #Tech`,
		Images: []ImageItem{
			{
				URL:      "https://images.unsplash.com/photo-1551288049-bebda4e38f71?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
				Alt:      "AI technology dashboard interface showing analytics",
				Filename: "image-1.jpg",
			},
			{
				URL:      "https://images.unsplash.com/photo-1497366216548-37526070297c?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
				Alt:      "Modern office space with technology",
				Filename: "image-2.jpg",
			},
			{
				URL:      "https://images.unsplash.com/photo-1522071820081-009f0129c71c?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
				Alt:      "Team collaboration meeting",
				Filename: "image-3.jpg",
			},
		},
		Videos: []VideoItem{
			{
				URL:      "https://sample-videos.com/zip/10/mp4/SampleVideo_1280x720_1mb.mp4",
				Title:    "Product Demo Video",
				Duration: "2:45",
				Filename: "video-1.mp4",
			},
		},
		Documents: []DocumentItem{
			{
				URL:      "https://www.w3.org/WAI/ER/tests/xhtml/testfiles/resources/pdf/dummy.pdf",
				Title:    "AI Innovation Whitepaper.pdf",
				Type:     "PDF Document",
				Size:     "2.3 MB",
				Filename: "document-1.pdf",
			},
			{
				URL:      "https://file-examples.com/storage/fe68c1a5c4b6b7a6f42ac4e/2017/10/file_example_PPT_1MB.ppt",
				Title:    "Product Roadmap 2024.pptx",
				Type:     "PowerPoint Presentation",
				Size:     "5.7 MB",
				Filename: "document-2.ppt",
			},
		},
	}
}
