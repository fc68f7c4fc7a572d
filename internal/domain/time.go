package domain

// TimeFormat is the layout used for every timestamp the API serializes.
const TimeFormat = "2006-01-02 15:04:05"
