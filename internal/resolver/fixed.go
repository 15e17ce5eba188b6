package resolver

const (
	teamPhoto   = "ti_bot_team.jpg"
	campusPhoto = "tiu-campus.jpg"

	creatorText = "TI-BOT was proudly created by Mr. Rozh Jaza Rasheed, together with " +
		"two talented students from the 3rd grade in the Computer Engineering department:" +
		"\n\n• **Rako Omer**\n• **Aryan Abdullah**\n\n" +
		"This AI project was developed to serve students and staff of Tishk International University – Sulaimani, " +
		"and to support digital transformation and modern technology in education. " +
		"TI-BOT is the first university AI assistant in Kurdistan."

	aboutBotText = "I am TI BOT 🤖 — an intelligent assistant developed for Tishk International University – Sulaimani. " +
		"I was created to help students, staff, and visitors by providing accurate information about rooms, " +
		"departments, staff locations, services, and general university assistance.\n\n" +
		"TI BOT was built by Mr. Rozh J. Rasheed (Lecturer) and two talented 3rd grade Computer Engineering students, " +
		"Rako Omer and Aryan Abdullah. Together, they designed and developed me as a modern AI solution to support " +
		"digital transformation at TIU-Sulaimani — and to make university services faster, smarter, and more accessible."

	universityText = "Tishk International University – Sulaimani (TIU-Sulaimani) is one of the region's leading private " +
		"universities, established in 2014 with a mission to deliver world-class education and contribute to " +
		"scientific progress and community development. The university offers diverse undergraduate programs " +
		"across Engineering, Health Sciences, Architecture, Education, Computer Science, and Business, all taught " +
		"in English to meet global academic and industrial standards."
)

// Creator describes who built the bot
func (r *Resolver) Creator() Answer {
	return Answer{Text: creatorText, Photo: r.PhotoURL(teamPhoto)}
}

// AboutBot describes the bot itself
func (r *Resolver) AboutBot() Answer {
	return Answer{Text: aboutBotText, Photo: r.PhotoURL(teamPhoto)}
}

// University describes TIU-Sulaimani
func (r *Resolver) University() Answer {
	return Answer{Text: universityText, Photo: r.PhotoURL(campusPhoto)}
}
