// Package prompt builds the outbound instruction text for every task type.
// Template wording is part of the contract with the models: downstream
// parsing depends on the output formats the templates demand, so the
// literal text is reproduced from the production prompts and must not be
// reworded casually.
package prompt

import (
	"fmt"
	"strings"

	"github.com/seller-loop/studio/internal/models"
)

const listingTemplate = `If you were an excellent Amazon product listing specialist.
    Your task is to create compelling and optimized product listings for Amazon based on the provided information.
    Please refer to the following examples and best seller products on Amazon to create a comprehensive product listing.

    Example of a good product listing on Amazon:

    <Example>
        <title>%[1]s</title>
        <bullets>%[2]s</title>
        <description>%[3]s</description>
    </Example>

    Please refer to the above image and the following production infomation fo to create product listing.

    Product Information:

    <product_information>
        <brand>%[4]s</brand>
        <keywords>%[5]s</keywords>
    </product_information>

    **Respond in valid XML format with the tags as "title", "bullets", "description"**.
    Here is one sample:
        <title>%[1]s</title>
        <bullets>%[2]s</title>
        <description>%[3]s</description>

    please answer it in %[6]s
    `

// Listing builds the listing-generation prompt from a stored reference
// product plus operator-supplied brand, feature keywords and language.
// Inputs are interpolated as-is; the tag-format contract in the template is
// what the response decoder relies on.
func Listing(record *models.ProductRecord, brand, features, language string) string {
	bullets := strings.Join(record.BulletPoints, "\n")
	return fmt.Sprintf(listingTemplate,
		record.Title, bullets, record.Description, brand, features, language)
}

const vocTemplate = `
    You are an analyst tasked with analyzing the provided customer review examples on an e-commerce platform and summarizing them into a comprehensive Voice of Customer (VoC) report. Your job is to carefully read through the product description and reviews, identify key areas of concern, praise, and dissatisfaction regarding the product. You will then synthesize these findings into a well-structured report that highlights the main points for the product team and management to consider.

    The report should include the following sections:
    Executive Summary - Briefly summarize the key findings and recommendations
    Positive Feedback - List the main aspects that customers praised about the product
    Areas for Improvement - Summarize the key areas of dissatisfaction and improvement needs raised by customers
    Differentiation from Competitors - Unique features or advantages that set a product apart from competitors
    Unperceived Product Features - Valuable product characteristics or benefits that customers are not fully aware of
    Core Factors for Repurchase and Recommendation - Critical elements that drive customers to repurchase and recommend a product
    Sentiment Analysis - Analyze the sentiment tendencies (positive, negative, neutral) in the reviews
    Topic Categorization - Categorize the review content by topics such as product quality, scent, effectiveness, etc.
    Recommendations - Based on the analysis, provide recommendations for product improvements and marketing strategies

    When writing the report, use concise and professional language, highlight key points, and provide reviews examples where relevant. Also, be mindful of protecting individual privacy by not disclosing any personally identifiable information.

    <Product descriptions>
    %s
    <Product descriptions>

    <product reviews>
    %s
    <product reviews>

    if output is not English, Please also ouput the reuslt in %s
    `

// VocSummary builds the full VoC report prompt. The review set is embedded
// verbatim, with no truncation or token accounting.
func VocSummary(reviews *models.ReviewSet, language string) string {
	return fmt.Sprintf(vocTemplate, "", reviews.Verbatim(), language)
}
