package ui

import "geosearch/internal/search"

// fetchResultMsg carries a provider response back into the update loop
type fetchResultMsg struct {
	resp search.Response
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// clearStatusMsg clears the status line after a delay
type clearStatusMsg struct{}
