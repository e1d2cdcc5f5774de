package utils

import (
	// Go Internal Packages
	"sort"
	"strconv"
	"strings"
)

func JoinInt32Slice(ints []int32) string {
	strs := make([]string, len(ints))
	for i, v := range ints {
		strs[i] = strconv.FormatInt(int64(v), 10)
	}
	return strings.Join(strs, ",")
}

// FormatAssignments renders a partition assignment as "topic[0,1] other[2]",
// topics sorted by name.
func FormatAssignments(assigned map[string][]int32) string {
	topics := make([]string, 0, len(assigned))
	for topic := range assigned {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	parts := make([]string, len(topics))
	for i, topic := range topics {
		partitions := append([]int32(nil), assigned[topic]...)
		sort.Slice(partitions, func(a, b int) bool { return partitions[a] < partitions[b] })
		parts[i] = topic + "[" + JoinInt32Slice(partitions) + "]"
	}
	return strings.Join(parts, " ")
}
