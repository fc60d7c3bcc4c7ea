package ragchat

var Version = "0.0.1"
