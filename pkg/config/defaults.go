package config

import (
	"net/url"

	"github.com/tickerwire/tickerwire/pkg/domain"
)

const rss2jsonEndpoint = "https://api.rss2json.com/v1/api.json"

// viaRSS2JSON makes a source fetched through the rss2json proxy
func viaRSS2JSON(id, name, feedURL string) domain.Source {
	return domain.Source{ID: id, Name: name, Kind: domain.SourceRSS2JSON,
		URL: rss2jsonEndpoint + "?rss_url=" + url.QueryEscape(feedURL)}
}

func defaultNewsSources() []domain.Source {
	return []domain.Source{
		viaRSS2JSON("bbc-business", "BBC Business", "https://feeds.bbci.co.uk/news/business/rss.xml"),
		viaRSS2JSON("cnbc", "CNBC", "https://search.cnbc.com/rs/search/combinedcms/view.xml?partnerId=wrss01&id=10001147"),
		viaRSS2JSON("marketwatch", "MarketWatch", "https://www.marketwatch.com/rss/topstories"),
		viaRSS2JSON("ft", "Financial Times", "https://www.ft.com/?format=rss"),
		viaRSS2JSON("investing", "Investing.com", "https://www.investing.com/rss/news.rss"),
		viaRSS2JSON("seekingalpha", "Seeking Alpha", "https://seekingalpha.com/feed.xml"),
		viaRSS2JSON("fool", "Motley Fool", "https://www.fool.com/feeds/index.aspx"),
		viaRSS2JSON("businessinsider", "Business Insider", "https://www.businessinsider.com/rss"),
		viaRSS2JSON("fortune", "Fortune", "https://fortune.com/feed"),
		viaRSS2JSON("forbes", "Forbes", "https://www.forbes.com/real-time/feed2/"),
		viaRSS2JSON("economist", "The Economist", "https://www.economist.com/finance-and-economics/rss.xml"),
		viaRSS2JSON("wsj-markets", "Wall Street Journal", "https://feeds.a.dj.com/rss/RSSMarketsMain.xml"),
		viaRSS2JSON("wsj-business", "Wall Street Journal", "https://feeds.a.dj.com/rss/WSJcomUSBusiness.xml"),
		viaRSS2JSON("barrons", "Barrons", "https://www.barrons.com/feed/rss/"),
		viaRSS2JSON("thestreet", "The Street", "https://www.thestreet.com/feeds/news/markets.xml"),
		viaRSS2JSON("nasdaq", "Nasdaq", "https://www.nasdaq.com/feed/rssoutbound"),
		viaRSS2JSON("benzinga", "Benzinga", "https://www.benzinga.com/feed"),
		viaRSS2JSON("cnn-money", "CNN Business", "http://rss.cnn.com/rss/money_latest.rss"),
	}
}

func defaultReputation() map[string]float64 {
	return map[string]float64{
		"Wall Street Journal": 10,
		"Financial Times":     10,
		"Bloomberg":           10,
		"Reuters":             9,
		"The Economist":       9,
		"Barrons":             9,
		"CNBC":                8,
		"Forbes":              8,
		"Fortune":             8,
		"Business Insider":    7,
		"MarketWatch":         7,
		"Seeking Alpha":       7,
		"BBC Business":        7,
		"The Street":          6,
		"Benzinga":            6,
		"Nasdaq":              6,
		"Investing.com":       6,
		"CNN Business":        6,
		"Motley Fool":         5,
	}
}

func defaultWorldSources() []domain.Source {
	return []domain.Source{
		{ID: "bbc-world", Name: "BBC World", Kind: domain.SourceRSS, URL: "https://feeds.bbci.co.uk/news/world/rss.xml"},
		{ID: "nyt-world", Name: "NY Times", Kind: domain.SourceRSS, URL: "https://rss.nytimes.com/services/xml/rss/nyt/World.xml"},
		{ID: "reuters-world", Name: "Reuters", Kind: domain.SourceRSS, URL: "https://feeds.reuters.com/Reuters/worldNews"},
		{ID: "aljazeera", Name: "Al Jazeera", Kind: domain.SourceRSS, URL: "https://www.aljazeera.com/xml/rss/all.xml"},
		{ID: "guardian-world", Name: "The Guardian", Kind: domain.SourceRSS, URL: "https://www.theguardian.com/world/rss"},
		{ID: "wapo-world", Name: "Washington Post", Kind: domain.SourceRSS, URL: "https://feeds.washingtonpost.com/rss/world"},
		{ID: "cnn-world", Name: "CNN", Kind: domain.SourceRSS, URL: "https://rss.cnn.com/rss/edition_world.rss"},
		{ID: "ft-world", Name: "Financial Times", Kind: domain.SourceRSS, URL: "https://www.ft.com/world?format=rss"},
	}
}

func defaultStocksFallback() []domain.Quote {
	return []domain.Quote{
		{Symbol: "^DJI", Name: "Dow Jones", Price: 44000},
		{Symbol: "^IXIC", Name: "Nasdaq", Price: 19500},
		{Symbol: "^GSPC", Name: "S&P 500", Price: 6000},
		{Symbol: "AAPL", Name: "Apple", Price: 230},
		{Symbol: "MSFT", Name: "Microsoft", Price: 420},
		{Symbol: "GOOGL", Name: "Alphabet", Price: 175},
	}
}

func defaultCryptoFallback() []domain.Quote {
	return []domain.Quote{
		{Symbol: "BTC", Name: "Bitcoin", Price: 96500, ChangePercent: 0.5},
		{Symbol: "ETH", Name: "Ethereum", Price: 3250, ChangePercent: 0.3},
		{Symbol: "SOL", Name: "Solana", Price: 185, ChangePercent: 1.2},
		{Symbol: "XRP", Name: "XRP", Price: 2.85, ChangePercent: -0.4},
	}
}

func defaultFCSFallback() []domain.Event {
	return []domain.Event{
		{Time: "8:30 AM", Title: "Initial Jobless Claims", Currency: "USD", Importance: domain.ImportanceMedium},
		{Time: "10:00 AM", Title: "Existing Home Sales", Currency: "USD", Importance: domain.ImportanceMedium},
		{Time: "10:30 AM", Title: "EIA Natural Gas Storage", Currency: "USD", Importance: domain.ImportanceLow},
		{Time: "11:00 AM", Title: "Kansas City Fed Mfg Index", Currency: "USD", Importance: domain.ImportanceLow},
		{Time: "1:00 PM", Title: "Treasury Note Auction", Currency: "USD", Importance: domain.ImportanceMedium},
	}
}

func defaultForexFactoryFallback() []domain.Event {
	return []domain.Event{
		{Time: "12:00 AM", Title: "Economy Watchers Sentiment", Currency: "JPY", Importance: domain.ImportanceMedium},
		{Time: "2:00 AM", Title: "German Industrial Production", Currency: "EUR", Importance: domain.ImportanceMedium},
		{Time: "3:30 AM", Title: "RBA Interest Rate Decision", Currency: "AUD", Importance: domain.ImportanceHigh},
		{Time: "4:30 AM", Title: "RBA Press Conference", Currency: "AUD", Importance: domain.ImportanceMedium},
		{Time: "7:00 AM", Title: "German Trade Balance", Currency: "EUR", Importance: domain.ImportanceHigh},
		{Time: "8:30 AM", Title: "JOLTS Job Openings", Currency: "USD", Importance: domain.ImportanceHigh},
		{Time: "10:00 AM", Title: "Consumer Confidence", Currency: "USD", Importance: domain.ImportanceMedium},
		{Time: "2:00 PM", Title: "FOMC Meeting Minutes", Currency: "USD", Importance: domain.ImportanceHigh},
		{Time: "4:30 PM", Title: "Fed Chair Powell Speaks", Currency: "USD", Importance: domain.ImportanceHigh},
	}
}
