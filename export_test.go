package scoreboard

var Classify = classify
