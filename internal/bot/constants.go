package bot

// Command prefix and reply texts
const (
	CommandPrefix = "!"

	welcomeMessage = "AI Explanation Bot 🤖 ready\n\n" +
		"Send me content to analyze, and I'll explain why it's important " +
		"based on your personality settings.\n\n" +
		"Use `!settings` to tune the personality, `!presets` for quick styles and `!help` for details."

	processingMessage       = "Analyzing your content... Please wait."
	processingPDFMessage    = "Processing your PDF... Please wait."
	pdfProcessedMessage     = "PDF processed. Analyzing content... Please wait."
	notPDFMessage           = "I can only process PDF files. Please send a PDF document."
	pdfTooLargeMessage      = "That PDF is too large. Please send a file under 20 MB."
	pdfDownloadFailed       = "Could not download the PDF. Please try sending it again."
	pdfNoTextMessage        = "Could not extract text from the PDF. The file might be scanned images or protected."
	backendErrorMessage     = "Sorry, the AI service is unavailable right now. Please try again later."
	streamFailedMessage     = "The AI service stopped responding before producing an answer. Please try again."
	emptyResponseMessage    = "Sorry, I couldn't generate a response."
	busyMessage             = "I'm handling too many requests right now. Please try again in a moment."
	composeErrorMessage     = "Your personality settings could not be applied. Try `!presets` and pick Reset to Default."
	settingsPrompt          = "Select a setting to adjust:"
	presetsPrompt           = "**🎭 Personality Presets**\n\nChoose a preset to quickly configure your bot's personality:"
	invalidPresetMessage    = "Invalid preset selected."
	invalidSelectionMessage = "That option is no longer available."
)

// Button grid layout. Discord allows five buttons per row and five rows per message.
const (
	settingsPerRow = 3
	presetsPerRow  = 4
	maxRowButtons  = 5
)

// Callback ids carried by buttons
const (
	actionSetting        = "setting"
	actionAdjust         = "adjust"
	actionToggle         = "toggle"
	actionPreset         = "preset"
	actionBackToSettings = "back_to_settings"
	actionBackToPresets  = "back_to_presets"
)

const helpMessage = `**📖 AI Explanation Bot Help**

**Commands:**
• ` + "`!start`" + ` - Start the bot and get a welcome message
• ` + "`!settings`" + ` - View and adjust personality settings
• ` + "`!presets`" + ` - Pick a ready-made personality
• ` + "`!help`" + ` - Show this help message

**How to Use:**
1. Send any text (or a PDF) in a direct message, or mention me in a server
2. The AI will explain why it's important
3. The explanation style is based on your current personality settings

**Personality Settings:**
• Calmness (0-1): How relaxed vs. agitated
• Rage (0-1): How angry and aggressive
• Funny (0-1): Level of humor and jokes
• Ironic (0-1): How sarcastic or literal
• Brevity (0-1): How concise vs. verbose
• Curse Words (0-1): Frequency of strong language
• Age (0-1): Childlike to elderly wisdom
• Rudeness (0-1): Polite to dismissive
• Slay (0-1): How much you want to slay (hosted model only)
• Caps Lock: ALL CAPS when ON
• Emoji: Uses emojis when ON

The further a setting is from 0.5, the more dramatic the effect!`
