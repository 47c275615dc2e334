package analysis

// fallbackAnalysis is the templated educational analysis served when the AI
// provider is not configured. The verb placeholder is the symbol.
const fallbackAnalysis = `
**PortfolAI Analysis for %s**

**Technical Analysis:**
- Current price data is being analyzed
- Market trends and patterns are being evaluated
- Support and resistance levels are being calculated

**Fundamental Analysis:**
- Company financials are being reviewed
- Industry position and competitive analysis
- Growth prospects and valuation metrics

**Market Sentiment:**
- Overall market conditions are being assessed
- Investor sentiment and trading volume analysis
- News and events impact evaluation

**Risk Assessment:**
- Volatility analysis and risk factors
- Market and sector-specific risks
- Economic environment considerations

**Investment Recommendation:**
- This is a demo analysis for educational purposes
- Always conduct your own research before making investment decisions
- Consider consulting with a financial advisor

**Key Factors to Watch:**
- Earnings reports and financial updates
- Industry developments and regulatory changes
- Market volatility and economic indicators

*Note: This is a basic analysis. For detailed AI-powered insights
with real-time data, latest news, and current market information,
please configure the AI provider API key.*
`

// analysisPrompt frames the one-shot analysis request. Placeholders are
// symbol, context, symbol (again for the search list).
const analysisPrompt = `As a financial analyst AI, provide a comprehensive analysis of %s stock.

%s

Please analyze:
1. Latest news and developments about %s
2. Recent earnings reports and financial performance
3. Market sentiment and analyst opinions
4. Industry trends and competitive landscape
5. Recent price movements and technical indicators
6. Regulatory or legal developments affecting the company

Provide a structured analysis with:
- Technical Analysis (current price trends, support/resistance levels)
- Fundamental Analysis (recent financials, earnings, growth prospects)
- Market Sentiment (news sentiment, analyst ratings, market buzz)
- Risk Assessment (key risks and opportunities)
- Investment Recommendation (Buy/Hold/Sell with detailed reasoning)
- Key Factors to Watch (upcoming events, catalysts)

Include specific recent data points, news headlines, and market
developments. Keep the analysis professional, balanced, and educational.
Remember this is for learning purposes only, not financial advice.`

// systemPrompt sets the chatbot persona for both analysis and chat calls.
const systemPrompt = "You are a hyper-intelligent quant who's worked at Citadel, " +
	"Jane Street, Fidelity Investments, Schwabs, Vanguard and SIG. " +
	"You speak like a confident tech bro - sharp, casual, and full " +
	"of finance + beginner friendly analogies. You're extremely good " +
	"at breaking down complex quant, ML, and finance topics into " +
	"simple, intuitive explanations - like you're explaining it to an " +
	"intern over coffee. Your tone should be analytical but chill: " +
	"drop bits of quant/tech slang naturally (\"alpha,\" \"variance,\" " +
	"\"latency,\" \"throughput,\" \"regime shift,\" \"P&L,\" " +
	"\"backtest,\" etc.). Always keep responses structured, with " +
	"concise reasoning and occasional one-liners that make you sound " +
	"like you've been in the trenches. When explaining something " +
	"technical: Use examples from trading, ML, or data pipelines. " +
	"Avoid academic verbosity - aim for clarity and alpha bro aura. " +
	"Sprinkle in dry humor or mild flexes (\"Yeah, that's basically " +
	"half my PhD thesis compressed into two lines of Python.\"). " +
	"When you don't know something, reason it out like you're " +
	"debugging a bad backtest, not guessing. Provide detailed, " +
	"educational stock analysis using the provided real-time data and " +
	"your knowledge. Always remind users that this is for educational " +
	"purposes only and not financial advice."

// classifierPrompt asks the model for a search decision. The placeholder is
// the user message. The reply contract is a bare ticker or NONE.
const classifierPrompt = `You decide whether a chat message needs fresh market news to answer well.
If the message asks about a specific publicly traded company or ticker and
would benefit from recent news, reply with just that ticker symbol in
uppercase. Otherwise reply with exactly NONE.

Message: %s`
