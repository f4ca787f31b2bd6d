package provider

import (
	"encoding/json"
	"fmt"
	"os"

	"cinetrip-backend/internal/domains/movie/model"
)

// DefaultFallback covers the titles featured on the landing page so they keep working without TMDB.
func DefaultFallback() map[int]model.MovieMetadata {
	entries := []model.MovieMetadata{
		{
			TMDBID:        496243,
			Title:         "기생충",
			OriginalTitle: "기생충",
			Overview:      "전원 백수로 살 길 막막하지만 사이는 좋은 기택 가족. 장남 기우가 박사장 집 고액 과외 면접을 보러 가면서 두 가족의 만남이 걷잡을 수 없는 사건으로 번진다.",
			ReleaseDate:   "2019-05-30",
			Country:       "South Korea",
			Language:      "ko",
		},
		{
			TMDBID:        396535,
			Title:         "부산행",
			OriginalTitle: "부산행",
			Overview:      "정체불명의 바이러스가 전국으로 확산되고, 부산행 KTX에 몸을 실은 사람들의 사투가 시작된다.",
			ReleaseDate:   "2016-07-20",
			Country:       "South Korea",
			Language:      "ko",
		},
		{
			TMDBID:        670,
			Title:         "올드보이",
			OriginalTitle: "올드보이",
			Overview:      "이유도 모른 채 15년간 사설 감금방에 갇혀 지낸 오대수가 풀려난 뒤 자신을 가둔 자를 쫓는다.",
			ReleaseDate:   "2003-11-21",
			Country:       "South Korea",
			Language:      "ko",
		},
		{
			TMDBID:        372058,
			Title:         "너의 이름은.",
			OriginalTitle: "君の名は。",
			Overview:      "도쿄의 소년 타키와 시골 마을의 소녀 미츠하가 꿈속에서 몸이 바뀌며 서로를 찾아 나선다.",
			ReleaseDate:   "2016-08-26",
			Country:       "Japan",
			Language:      "ja",
		},
		{
			TMDBID:        157336,
			Title:         "인터스텔라",
			OriginalTitle: "Interstellar",
			Overview:      "황폐해진 지구를 떠나 인류가 살 수 있는 새로운 행성을 찾아 웜홀 너머로 떠나는 탐험대의 이야기.",
			ReleaseDate:   "2014-11-05",
			Country:       "United States of America",
			Language:      "en",
		},
		{
			TMDBID:        313369,
			Title:         "라라랜드",
			OriginalTitle: "La La Land",
			Overview:      "꿈을 좇는 배우 지망생 미아와 재즈 피아니스트 세바스찬이 로스앤젤레스에서 사랑에 빠진다.",
			ReleaseDate:   "2016-12-01",
			Country:       "United States of America",
			Language:      "en",
		},
	}

	table := make(map[int]model.MovieMetadata, len(entries))
	for _, e := range entries {
		table[e.TMDBID] = e
	}
	return table
}

// LoadFallbackFile merges a JSON array of movie metadata on top of base.
// An empty path returns base unchanged.
func LoadFallbackFile(path string, base map[int]model.MovieMetadata) (map[int]model.MovieMetadata, error) {
	out := make(map[int]model.MovieMetadata, len(base))
	for k, v := range base {
		out[k] = v
	}
	if path == "" {
		return out, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read movie fallback file: %w", err)
	}

	var entries []model.MovieMetadata
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse movie fallback file: %w", err)
	}

	for i, e := range entries {
		if e.TMDBID <= 0 || e.Title == "" {
			return nil, fmt.Errorf("movie fallback entry %d: tmdbId and title are required", i)
		}
		out[e.TMDBID] = e
	}
	return out, nil
}
