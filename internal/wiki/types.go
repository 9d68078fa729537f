package wiki

import "github.com/TimXiedada/wikifur-persons-template-bot/internal/model"

// Page is the current state of a wiki page.
type Page struct {
	// Title is the normalized page title.
	Title string

	// Text is the wikitext of the latest revision. Empty for a missing page.
	Text string

	// Exists is false when the page has not been created yet.
	Exists bool

	// Timestamp is the timestamp of the latest revision, used as the edit
	// base timestamp for conflict detection. Empty for a missing page.
	Timestamp string

	// StartTimestamp is the server time at which the page was read.
	StartTimestamp string
}

// EditRequest describes one page edit.
type EditRequest struct {
	Title   string
	Text    string
	Summary string

	// BaseTimestamp and StartTimestamp come from the Page the edit is based
	// on. When set, the wiki reports an edit conflict if the page changed
	// in between.
	BaseTimestamp  string
	StartTimestamp string

	// Bot marks the edit as a bot edit.
	Bot bool
}

// apiResponse holds the members shared by every API response.
type apiResponse struct {
	Error *APIError `json:"error,omitempty"`
}

type tokensResponse struct {
	apiResponse
	Query struct {
		Tokens struct {
			LoginToken string `json:"logintoken"`
			CSRFToken  string `json:"csrftoken"`
		} `json:"tokens"`
	} `json:"query"`
}

type loginResponse struct {
	apiResponse
	Login struct {
		Result     string `json:"result"`
		Reason     string `json:"reason"`
		LgUsername string `json:"lgusername"`
	} `json:"login"`
}

type siteInfoResponse struct {
	apiResponse
	Query struct {
		General struct {
			SiteName  string `json:"sitename"`
			Generator string `json:"generator"`
		} `json:"general"`
	} `json:"query"`
}

type categoryMembersResponse struct {
	apiResponse
	Continue map[string]string `json:"continue,omitempty"`
	Query    struct {
		CategoryMembers []model.Member `json:"categorymembers"`
	} `json:"query"`
}

type revisionsResponse struct {
	apiResponse
	CurTimestamp string `json:"curtimestamp"`
	Query        struct {
		Pages []struct {
			Title     string `json:"title"`
			Missing   bool   `json:"missing"`
			Invalid   bool   `json:"invalid"`
			Revisions []struct {
				Timestamp string `json:"timestamp"`
				Slots     struct {
					Main struct {
						Content string `json:"content"`
					} `json:"main"`
				} `json:"slots"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
}

type editResponse struct {
	apiResponse
	Edit struct {
		Result   string `json:"result"`
		NoChange bool   `json:"nochange"`
		NewRevID int64  `json:"newrevid"`
	} `json:"edit"`
}

// SiteInfo describes the wiki the client talks to.
type SiteInfo struct {
	Name      string
	Generator string
}
