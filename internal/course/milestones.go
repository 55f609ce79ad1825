package course

// TotalDistance is the stock course length.
const TotalDistance = 12000

// Default is the built-in career course.
var Default = MustTable(Table{
	{
		ID:    "m1",
		Year:  "2011-2013",
		Title: "Hobby Project: SpecialWar",
		Description: []string{
			"Founded and developed SpecialWar MMO FPS game from scratch",
			"Scaled to 2M+ registered users with 50K+ daily active players",
			"Built custom game engine with C++ and integrated MySQL backend",
			"Managed complete tech stack: server infrastructure, game client, web platform",
			"Implemented anti-cheat systems and real-time multiplayer mechanics",
		},
		ZDistance: 1500,
		Kind:      KindProject,
		Color:     "#FF5733",
	},
	{
		ID:    "m2",
		Year:  "2013-2018",
		Title: "Selçuk University",
		Description: []string{
			"B.Sc. Computer Engineering - Graduated with High Honors (3.44/4.00 GPA)",
			"Specialized in System Architecture, Algorithms & Data Structures",
			"Published graduation project on distributed systems optimization",
			"Active member of IEEE Computer Society",
			"Led multiple academic software development projects",
		},
		ZDistance: 3000,
		Kind:      KindEducation,
		Color:     "#33FF57",
	},
	{
		ID:    "m3",
		Year:  "2016-2017",
		Title: "Early Career & Internships",
		Description: []string{
			"Software Engineering Intern at Etiya (Telecom solutions)",
			"Full-stack development with ASP.NET MVC & JavaScript",
			"Worked on enterprise-grade CRM and billing systems",
			"Gained exposure to Agile/Scrum methodologies",
			"Developed RESTful APIs and integrated payment gateways",
		},
		ZDistance: 4500,
		Kind:      KindWork,
		Color:     "#3357FF",
	},
	{
		ID:    "m4",
		Year:  "2019-2022",
		Title: "Chang'an University - Master's Degree",
		Description: []string{
			"M.Sc. Software Engineering (China Government Scholarship recipient)",
			`Thesis: "Optimization Strategies for Distributed Computing Systems"`,
			"Research in cloud computing, microservices architecture & AI applications",
			"Published papers on load balancing algorithms",
			"Cross-cultural tech leadership and international collaboration",
		},
		ZDistance: 6500,
		Kind:      KindEducation,
		Color:     "#F3FF33",
	},
	{
		ID:    "m5",
		Year:  "2021-2023",
		Title: "Digital Commerce Bank (Dijital Ticaret Bankası)",
		Description: []string{
			"Senior Software Engineer - Core Banking Systems Team",
			"Architected microservices with .NET Core, Docker & Kubernetes",
			"Built high-availability payment processing systems (99.99% uptime)",
			"Implemented event-driven architecture with RabbitMQ & Kafka",
			"Led migration from monolith to microservices for critical modules",
			"Collaborated with PCI-DSS compliance and security teams",
		},
		ZDistance: 8500,
		Kind:      KindWork,
		Color:     "#FF33F3",
	},
	{
		ID:    "m6",
		Year:  "2023-Present",
		Title: "Firisbe - Team Lead & Senior Software Engineer",
		Description: []string{
			"Leading cross-functional team of 10+ engineers (Frontend, Backend, Mobile)",
			"Architecting and developing payment solutions: Payment Facilitator, Payment Gateway, SoftPOS, Digital Wallet",
			"Built scalable fintech infrastructure with React.js, Next.js, Java, Node.js, Express.js",
			"Designed event-driven payment processing systems with Kafka for high-throughput transactions",
			"Implemented secure payment flows with PostgreSQL and MongoDB for transaction management",
			"Established CI/CD pipelines, code review standards & comprehensive testing frameworks",
			"Mentoring junior developers and conducting technical interviews",
			"Tech Stack: React.js, Next.js, Java, Node.js, Express.js, PostgreSQL, MongoDB, Kafka",
		},
		ZDistance: 10500,
		Kind:      KindWork,
		Color:     "#00f3ff",
	},
}, TotalDistance)
