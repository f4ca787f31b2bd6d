package service

import (
	"fmt"
	"strings"

	moviemodel "cinetrip-backend/internal/domains/movie/model"
	"cinetrip-backend/internal/domains/scene/model"
)

const outputExample = `{"items":[{"id":1,"name":"Location name","scene":"What happens here in the movie","timestamp":"00:45:10","address":"Full street address","country":"Country","city":"City","lat":37.5665,"lng":126.978}]}`

var koreaNames = []string{"korea", "south korea", "republic of korea", "kr", "대한민국", "한국"}

// isKorean is true for Korean-language movies or Korean productions.
func isKorean(meta moviemodel.MovieMetadata) bool {
	if strings.EqualFold(strings.TrimSpace(meta.Language), "ko") {
		return true
	}
	country := strings.ToLower(strings.TrimSpace(meta.Country))
	for _, name := range koreaNames {
		if country == name {
			return true
		}
	}
	return false
}

// releaseYear is the part of a YYYY-MM-DD date before the first '-', at most 4 characters.
func releaseYear(date string) string {
	year, _, _ := strings.Cut(strings.TrimSpace(date), "-")
	if r := []rune(year); len(r) > 4 {
		return string(r[:4])
	}
	return year
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return moviemodel.UnknownValue
	}
	return s
}

// BuildPrompt renders the scene location request for one movie. It is deterministic.
func BuildPrompt(tmdbID int, meta moviemodel.MovieMetadata) string {
	var b strings.Builder

	if isKorean(meta) {
		fmt.Fprintf(&b, "다음 영화의 실제 촬영지를 최대 %d곳까지 알려주세요.\n", model.MaxLocationsPerMovie)
		b.WriteString("장소 이름과 주소는 한국어로, 실제로 방문할 수 있는 장소만 포함하세요.\n\n")
	} else {
		fmt.Fprintf(&b, "List up to %d real filming locations of the following movie.\n", model.MaxLocationsPerMovie)
		b.WriteString("Only include places that exist and can be visited today.\n\n")
	}

	fmt.Fprintf(&b, "TMDB ID: %d\n", tmdbID)
	fmt.Fprintf(&b, "Title: %s\n", orUnknown(meta.Title))
	fmt.Fprintf(&b, "Original title: %s\n", orUnknown(meta.OriginalTitle))
	fmt.Fprintf(&b, "Release year: %s\n", orUnknown(releaseYear(meta.ReleaseDate)))
	fmt.Fprintf(&b, "Production country: %s\n", orUnknown(meta.Country))
	fmt.Fprintf(&b, "Original language: %s\n", orUnknown(meta.Language))
	if overview := strings.TrimSpace(meta.Overview); overview != "" {
		fmt.Fprintf(&b, "Overview: %s\n", overview)
	}

	b.WriteString("\nFor each location give the scene filmed there, the approximate timestamp in the movie, ")
	b.WriteString("the full address, country, city and decimal latitude/longitude.\n")
	b.WriteString("Answer with a single JSON object exactly in this shape:\n")
	b.WriteString(outputExample)
	b.WriteString("\n")

	return b.String()
}
