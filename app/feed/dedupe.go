package feed

// Dedupe drops videos whose non-empty VideoID was already seen, keeping the
// first occurrence and the relative order of everything kept.
func Dedupe(videos []Video) []Video {
	seen := make(map[string]struct{}, len(videos))
	deduped := make([]Video, 0, len(videos))

	for _, video := range videos {
		if video.VideoID != "" {
			if _, ok := seen[video.VideoID]; ok {
				continue
			}
			seen[video.VideoID] = struct{}{}
		}
		deduped = append(deduped, video)
	}

	return deduped
}
