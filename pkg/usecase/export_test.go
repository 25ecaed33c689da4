package usecase

// NestOptions is exported for testing
var NestOptions = nestOptions

// CodeList is exported for testing
var CodeList = codeList
